package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"filippo.io/age"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"gnark-aes-block/utils"
)

func doJSON(t *testing.T, h echo.HandlerFunc, method string, body interface{}) (*httptest.ResponseRecorder, *Response) {
	t.Helper()
	e := echo.New()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, &resp
}

func TestHealth(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)

	rec, resp := doJSON(t, s.health, http.MethodGet, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", resp.Status)
}

func TestIdentity(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)

	rec, resp := doJSON(t, s.identity, http.MethodGet, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var id IdentityResponse
	require.NoError(t, json.Unmarshal(data, &id))

	_, err = age.ParseX25519Recipient(id.PublicKey)
	require.NoError(t, err)
	require.Equal(t, s.Identity.Recipient().String(), id.PublicKey)
}

func TestProveRejectsUnsealedParams(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)

	rec, resp := doJSON(t, s.prove, http.MethodPost, &ProveRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error", resp.Status)

	// sealed to a different recipient, this server cannot open it
	other, err := age.GenerateX25519Identity()
	require.NoError(t, err)
	sealed, err := utils.AgeEncrypt([]byte(`{"cipher":"aes-128-block"}`), other.Recipient())
	require.NoError(t, err)

	rec, resp = doJSON(t, s.prove, http.MethodPost, &ProveRequest{EncryptedParams: sealed})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "error", resp.Status)
}

func TestProveUninitializedProver(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)

	params := []byte(`{"cipher":"aes-128-block","key":[],"plaintext":[]}`)
	sealed, err := utils.AgeEncrypt(params, s.Identity.Recipient())
	require.NoError(t, err)

	rec, resp := doJSON(t, s.prove, http.MethodPost, &ProveRequest{EncryptedParams: sealed})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "error", resp.Status)
}

func TestVerifyUnknownCipher(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)

	rec, resp := doJSON(t, s.verify, http.MethodPost, &VerifyRequest{
		Params: []byte(`{"cipher":"unknown","proof":[],"publicSignals":{}}`),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var vr VerifyResponse
	require.NoError(t, json.Unmarshal(data, &vr))
	require.False(t, vr.Valid)
}
