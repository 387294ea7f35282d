package labels

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/evidenceops/hyperproof-apiclient/common"
	"github.com/evidenceops/hyperproof-apiclient/proof"
	"github.com/google/uuid"
	"github.com/moogar0880/problems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testEndpointURI = &url.URL{
		Scheme: "http",
		Host:   "hyperproof.test",
		Path:   "/v1/labels",
	}

	testLabel = &Label{
		ID:          uuid.New(),
		Name:        "Q3 pentest",
		Description: "Evidence from the Q3 penetration test",
	}

	testProof = &proof.Proof{
		ID:          uuid.New(),
		Filename:    "evidence.json",
		ContentType: "application/json",
		Version:     1,
	}
)

func TestService_NewService(t *testing.T) {
	_, err := NewService(string([]byte{0x7f}), nil)
	assert.EqualError(t, err, "malformed URI: parse \"\\x7f\": net/url: invalid control character in URL")

	_, err = NewService("test", nil)
	assert.EqualError(t, err, "URI is not absolute: \"test\"")

	service, err := NewService("http://hyperproof.test:9999/v1/labels", nil)
	assert.NoError(t, err)
	assert.Equal(t, "hyperproof.test:9999", service.EndPointURI.Host)
}

func TestService_TLS_NewTLSService(t *testing.T) {
	_, err := NewTLSService("http://hyperproof.test:9999/v1/labels", nil, nil)
	assert.Contains(t, err.Error(), "expected HTTPS scheme")

	service, err := NewTLSService("https://hyperproof.test:9999/v1/labels", nil, nil)
	require.NoError(t, err)
	transport := service.Client.HTTPClient.Transport.(*http.Transport)
	assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestService_TLS_NewInsecureTLSService(t *testing.T) {
	_, err := NewInsecureTLSService("http://hyperproof.test:9999/v1/labels", nil)
	assert.Contains(t, err.Error(), "expected HTTPS scheme")

	service, err := NewInsecureTLSService("https://hyperproof.test:9999/v1/labels", nil)
	require.NoError(t, err)
	transport := service.Client.HTTPClient.Transport.(*http.Transport)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestService_SetClient(t *testing.T) {
	service, err := NewService("http://hyperproof.test:9999/v1/labels", nil)
	require.NoError(t, err)

	err = service.SetClient(nil)
	assert.EqualError(t, err, "no client supplied")

	client := common.NewClient(nil)
	err = service.SetClient(client)
	assert.NoError(t, err)
}

func TestService_Create(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, testEndpointURI.RequestURI(), r.RequestURI)
		assert.Equal(t, common.MediaTypeJSON, r.Header.Get("Content-Type"))
		assert.Equal(t, common.MediaTypeJSON, r.Header.Get("Accept"))

		defer r.Body.Close()
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(
			t,
			`{"name": "Q3 pentest", "description": "Evidence from the Q3 penetration test"}`,
			string(body),
		)

		w.Header().Set("Content-Type", common.MediaTypeJSON)
		w.WriteHeader(http.StatusCreated)
		_, err = w.Write(toBytes(testLabel))
		assert.NoError(t, err)
	})

	client, teardown := common.NewTestingHTTPClient(h)
	defer teardown()

	service := Service{
		EndPointURI: testEndpointURI,
		Client:      client,
	}

	label, err := service.Create("Q3 pentest", "Evidence from the Q3 penetration test")
	require.NoError(t, err)
	assert.Equal(t, testLabel.ID, label.ID)
	assert.Equal(t, "Q3 pentest", label.Name)
}

func TestService_Create_no_name(t *testing.T) {
	service := Service{EndPointURI: testEndpointURI}

	_, err := service.Create("", "Some description")
	assert.EqualError(t, err, "no label name supplied")
}

func TestService_Create_failures(t *testing.T) {
	test := "empty"

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch test {
		case "empty":
			w.Header().Set("Content-Type", common.MediaTypeJSON)
			w.WriteHeader(http.StatusCreated)
		case "conflict":
			prob := problems.NewDetailedProblem(http.StatusConflict, "label already exists")

			w.Header().Set("Content-Type", problems.ProblemMediaType)
			w.WriteHeader(http.StatusConflict)
			_, err := w.Write(toBytes(prob))
			assert.NoError(t, err)
		case "server-error":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			require.Fail(t, "unexpected test value: %q", test)
		}
	})

	client, teardown := common.NewTestingHTTPClient(h)
	defer teardown()

	service := Service{
		EndPointURI: testEndpointURI,
		Client:      client,
	}

	_, err := service.Create("Q3 pentest", "")
	assert.EqualError(t, err, "empty body")

	test = "conflict"
	_, err = service.Create("Q3 pentest", "")
	assert.EqualError(t, err, "409 Conflict: label already exists")

	test = "server-error"
	_, err = service.Create("Q3 pentest", "")
	assert.EqualError(t, err, "unexpected HTTP response code 500")
}

func TestService_AddProof(t *testing.T) {
	path := writeTestFile(t, "evidence.json", `{"finding": "none"}`)

	expectedURI := testEndpointURI.JoinPath("l1", "proof")

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, expectedURI.RequestURI(), r.RequestURI)

		f, fileHdr, err := r.FormFile("proof")
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "evidence.json", fileHdr.Filename)

		w.Header().Set("Content-Type", common.MediaTypeJSON)
		w.WriteHeader(http.StatusCreated)
		_, err = w.Write(toBytes(testProof))
		assert.NoError(t, err)
	})

	client, teardown := common.NewTestingHTTPClient(h)
	defer teardown()

	service := Service{
		EndPointURI: testEndpointURI,
		Client:      client,
	}

	p, err := service.AddProof("l1", path, "")
	require.NoError(t, err)
	assert.Equal(t, testProof.ID, p.ID)
}

func TestService_AddProof_no_id(t *testing.T) {
	service := Service{EndPointURI: testEndpointURI}

	_, err := service.AddProof("", "evidence.json", "")
	assert.EqualError(t, err, "no label id supplied")
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func toBytes(in interface{}) []byte {
	b, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	return b
}
