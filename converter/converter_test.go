package converter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camreview/threads-affiliate/converter"
)

func TestHTTPConverterConvert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/convert", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "https://shopee.vn/product1", req["shopee_url"])

		json.NewEncoder(w).Encode(converter.Result{
			Success:       true,
			AffiliateLink: "https://s.shopee.vn/aff1",
			OriginalLink:  req["shopee_url"],
		})
	}))
	defer server.Close()

	conv := converter.NewHTTPConverter(server.URL, 5*time.Second)
	link, err := conv.Convert(context.Background(), "https://shopee.vn/product1")
	require.NoError(t, err)
	assert.Equal(t, "https://s.shopee.vn/aff1", link)
}

func TestHTTPConverterFailureResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(converter.Result{
			Success: false,
			Error:   "console session expired",
		})
	}))
	defer server.Close()

	conv := converter.NewHTTPConverter(server.URL, 5*time.Second)
	_, err := conv.Convert(context.Background(), "https://shopee.vn/product1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console session expired")
}

func TestHTTPConverterUnreachable(t *testing.T) {
	conv := converter.NewHTTPConverter("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := conv.Convert(context.Background(), "https://shopee.vn/product1")
	assert.Error(t, err)
}
