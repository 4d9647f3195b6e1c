package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	"github.com/minvws/nl-covid19-coronacheck-dgc/issuer"
	"github.com/minvws/nl-covid19-coronacheck-dgc/issuer/hsmsigner"
	"github.com/minvws/nl-covid19-coronacheck-dgc/issuer/localsigner"
)

// maxRequestSize bounds request bodies, a credential request is a few kilobytes at most
const maxRequestSize = 1 << 20

type Configuration struct {
	ListenAddress string
	ListenPort    string

	IssuerCountryCode string

	// Exactly one of the signer configurations is used, HSM takes precedence
	LocalSignerConfig *localsigner.Configuration
	HSMSignerConfig   *hsmsigner.Configuration
}

type server struct {
	config *Configuration
	issuer *issuer.Issuer
	now    func() time.Time
}

type GetCredentialRequest struct {
	KeyUsage       string      `json:"keyUsage"`
	ExpirationTime string      `json:"expirationTime"`
	DCC            *common.DCC `json:"dcc"`
}

type GetCredentialResponse struct {
	Credential string `json:"credential"`
}

func Run(config *Configuration) error {
	var signer issuer.Signer
	if config.HSMSignerConfig != nil {
		hsmSigner, err := hsmsigner.New(config.HSMSignerConfig)
		if err != nil {
			return errors.WrapPrefix(err, "Could not create HSM signer", 0)
		}
		defer hsmSigner.Close()

		signer = hsmSigner
	} else {
		localSigner, err := localsigner.New(config.LocalSignerConfig)
		if err != nil {
			return errors.WrapPrefix(err, "Could not create local signer", 0)
		}

		signer = localSigner
	}

	s := &server{
		config: config,
		issuer: issuer.New(signer),
		now:    time.Now,
	}

	err := s.Serve()
	if err != nil {
		return errors.WrapPrefix(err, "Could not start server", 0)
	}

	return nil
}

func (s *server) Serve() error {
	addr := fmt.Sprintf("%s:%s", s.config.ListenAddress, s.config.ListenPort)
	slog.Info("Starting issuance server", "address", addr, "issuer", s.config.IssuerCountryCode)

	err := http.ListenAndServe(addr, s.buildHandler())
	if err != nil {
		return errors.WrapPrefix(err, "Could not start listening", 0)
	}

	return nil
}

func (s *server) buildHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/get_credential", s.handleGetCredential)

	return r
}

func (s *server) handleGetCredential(w http.ResponseWriter, r *http.Request) {
	credentialRequest := &GetCredentialRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	err := json.NewDecoder(r.Body).Decode(credentialRequest)
	if err != nil {
		writeError(w, r, requestErrorStatus(err), errors.WrapPrefix(err, "Could not decode credential request", 0))
		return
	}

	if credentialRequest.DCC == nil {
		writeError(w, r, http.StatusBadRequest, errors.Errorf("Refusing to sign empty DCC"))
		return
	}

	expirationTime, err := time.Parse(time.RFC3339, credentialRequest.ExpirationTime)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, errors.WrapPrefix(err, "Could not parse expirationTime", 0))
		return
	}

	credential, err := s.issuer.IssueQREncoded(&issuer.IssueSpecification{
		KeyUsage:       credentialRequest.KeyUsage,
		Issuer:         s.config.IssuerCountryCode,
		IssuedAt:       s.now().Unix(),
		ExpirationTime: expirationTime.Unix(),
		DCC:            credentialRequest.DCC,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.WrapPrefix(err, "Could not issue credential", 0))
		return
	}

	responseBody, err := json.Marshal(&GetCredentialResponse{
		Credential: string(credential),
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.WrapPrefix(err, "Could not JSON marshal credential response", 0))
		return
	}

	slog.Info("Issued credential", "keyUsage", credentialRequest.KeyUsage, "requestID", middleware.GetReqID(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(responseBody)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	slog.Error("Request failed", "error", err, "requestID", middleware.GetReqID(r.Context()))
	http.Error(w, err.Error(), status)
}

func requestErrorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusBadRequest
}
