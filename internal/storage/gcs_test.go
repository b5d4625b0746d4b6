package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestGCSImageStore_ObjectName(t *testing.T) {
	s := &GCSImageStore{bucket: "bijoux-product-images"}

	t.Run("parses object name from public URL", func(t *testing.T) {
		name, err := s.objectName("https://storage.googleapis.com/bijoux-product-images/products/p1_main_1700000000000.webp")
		require.NoError(t, err)
		assert.Equal(t, "products/p1_main_1700000000000.webp", name)
	})

	t.Run("rejects URL from another bucket", func(t *testing.T) {
		_, err := s.objectName("https://storage.googleapis.com/other-bucket/products/p1.webp")
		assert.Error(t, err)
	})

	t.Run("rejects URL from another host", func(t *testing.T) {
		_, err := s.objectName("https://example.com/bijoux-product-images/products/p1.webp")
		assert.Error(t, err)
	})
}

func TestGCSImageStore_Delete_MissingObject(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := storage.NewClient(ctx,
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)
	defer client.Close()

	s := NewGCSImageStore(client, "bijoux-product-images")

	err = s.Delete(ctx, "https://storage.googleapis.com/bijoux-product-images/products/gone.webp")
	assert.NoError(t, err)
}
