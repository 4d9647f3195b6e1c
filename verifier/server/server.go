package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-errors/errors"
	"github.com/minvws/nl-covid19-coronacheck-dgc/common"
	"github.com/minvws/nl-covid19-coronacheck-dgc/trustlist"
	"github.com/minvws/nl-covid19-coronacheck-dgc/verifier"
)

// maxRequestSize bounds request bodies, a credential request is a few kilobytes at most
const maxRequestSize = 1 << 20

type Configuration struct {
	ListenAddress string
	ListenPort    string

	TrustList *trustlist.TrustList
}

type server struct {
	config   *Configuration
	verifier *verifier.Verifier
}

type verificationRequest struct {
	Credential string `json:"credential"`
}

type verificationResponse struct {
	ValidSignature    bool                        `json:"validSignature"`
	SignatureValidity *verifier.SignatureValidity `json:"signatureValidity,omitempty"`
	VerificationError string                      `json:"verificationError,omitempty"`
	HealthCertificate *common.Container           `json:"healthCertificate,omitempty"`
}

func Run(config *Configuration) error {
	if config.TrustList == nil {
		config.TrustList = trustlist.New()
	}

	s := &server{
		config:   config,
		verifier: verifier.New(config.TrustList),
	}

	err := s.Serve()
	if err != nil {
		return errors.WrapPrefix(err, "Could not start server", 0)
	}

	return nil
}

func (s *server) Serve() error {
	addr := fmt.Sprintf("%s:%s", s.config.ListenAddress, s.config.ListenPort)
	slog.Info("Starting verification server", "address", addr, "trustedKeys", s.config.TrustList.Len())

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

	r.Get("/health", handleHealth)
	r.Post("/verify_signature", s.handleVerifySignature)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *server) handleVerifySignature(w http.ResponseWriter, r *http.Request) {
	req := &verificationRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		writeError(w, r, requestErrorStatus(err), errors.WrapPrefix(err, "Could not JSON unmarshal verification request", 0))
		return
	}

	var response *verificationResponse
	container, validity, err := s.verifier.VerifyQREncoded([]byte(req.Credential))
	if err != nil {
		response = &verificationResponse{
			ValidSignature:    false,
			VerificationError: err.Error(),
		}
	} else {
		response = &verificationResponse{
			ValidSignature:    validity.IsValid(),
			SignatureValidity: validity,
			HealthCertificate: container,
		}
	}

	responseJson, err := json.Marshal(response)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.WrapPrefix(err, "Could not JSON marshal verification response", 0))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(responseJson)
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
