//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-contract-suite/internal/app/twin"
	pacttest "github.com/Apurer/petstore-contract-suite/test/pact"
)

func TestPetstoreTwinProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tw, err := twin.New(context.Background(), twin.Config{})
	require.NoError(t, err)
	t.Cleanup(tw.Close)
	server := httptest.NewServer(tw.Handler())
	t.Cleanup(server.Close)

	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		return nil, tw.Reset(context.Background())
	}

	verifier := pactprovider.NewVerifier()
	err = verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateSeeded:     reset,
			pacttest.StatePetExists:  reset,
			pacttest.StatePetMissing: reset,
			pacttest.StateOrderBase:  reset,
		},
		BeforeEach: func() error {
			return tw.Reset(context.Background())
		},
	})
	require.NoError(t, err)
}
