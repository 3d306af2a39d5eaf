package credentials

import (
	"context"
	"encoding/json"

	"tenderai/internal/endpoints"
	"tenderai/pkg/apiclient"
	dErrors "tenderai/pkg/domain-errors"
	"tenderai/pkg/envelope"
)

var _ apiclient.AuthRefresher = (*HTTPRefresher)(nil)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// HTTPRefresher exchanges the stored refresh token for a new access token.
type HTTPRefresher struct {
	client   apiclient.Requester
	tokens   *StorageTokenProvider
	endpoint string
}

func NewHTTPRefresher(client apiclient.Requester, tokens *StorageTokenProvider) *HTTPRefresher {
	return &HTTPRefresher{client: client, tokens: tokens, endpoint: endpoints.AuthRefresh}
}

// Refresh posts the refresh token without auth and without a nested refresh
// attempt. A rotated refresh token is stored; the access token is returned
// for the client to persist and retry with.
func (r *HTTPRefresher) Refresh(ctx context.Context) (string, error) {
	refreshToken := r.tokens.RefreshToken(ctx)
	if refreshToken == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "no refresh token stored")
	}

	var raw json.RawMessage
	err := r.client.Post(ctx, r.endpoint, refreshRequest{RefreshToken: refreshToken}, &raw, &apiclient.RequestConfig{
		SkipAuth:         true,
		DisableAuthRetry: true,
	})
	if err != nil {
		return "", err
	}

	pair, err := decodeTokenPair(raw)
	if err != nil {
		return "", err
	}
	if pair.RefreshToken != "" && pair.RefreshToken != refreshToken {
		if err := r.tokens.SetRefreshToken(ctx, pair.RefreshToken); err != nil {
			return "", err
		}
	}
	return pair.AccessToken, nil
}

// decodeTokenPair accepts an enveloped or a bare token pair.
func decodeTokenPair(raw json.RawMessage) (tokenPair, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return tokenPair{}, dErrors.Wrap(err, dErrors.CodeUnexpectedShape, "refresh response is not an object")
	}

	var pair tokenPair
	if _, enveloped := keys["success"]; enveloped {
		var env envelope.Envelope[tokenPair]
		if err := json.Unmarshal(raw, &env); err != nil {
			return tokenPair{}, dErrors.Wrap(err, dErrors.CodeUnexpectedShape, "decode refresh response")
		}
		data, err := envelope.Unwrap(env)
		if err != nil {
			return tokenPair{}, err
		}
		pair = data
	} else if err := json.Unmarshal(raw, &pair); err != nil {
		return tokenPair{}, dErrors.Wrap(err, dErrors.CodeUnexpectedShape, "decode refresh response")
	}

	if pair.AccessToken == "" {
		return tokenPair{}, dErrors.New(dErrors.CodeUnexpectedShape, "refresh response has no access_token")
	}
	return pair, nil
}
