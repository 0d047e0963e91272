package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/pep299/portfolio-pulse/internal/service"
	"github.com/pep299/portfolio-pulse/internal/transport/response"
)

// GenerateDigest handles POST /digest/generate.
type GenerateDigest struct {
	digest *service.Digest
}

func NewGenerateDigest(digest *service.Digest) *GenerateDigest {
	return &GenerateDigest{digest: digest}
}

func (h *GenerateDigest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	digest, err := h.digest.Generate(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPortfolio):
			response.WriteBadRequest(w, "save a portfolio before generating digests")
		case errors.Is(err, service.ErrGenerationInFlight):
			response.WriteConflict(w, "a generation is already in flight")
		default:
			// Pipeline failures never clear displayed state; history
			// still holds the last good digest.
			log.Printf("Digest generation failed: %v", err)
			response.WriteBadGateway(w, err.Error())
		}
		return
	}

	response.WriteAccepted(w, "Digest generated", digest)
}

// ListDigests handles GET /digests.
type ListDigests struct {
	digest *service.Digest
}

func NewListDigests(digest *service.Digest) *ListDigests {
	return &ListDigests{digest: digest}
}

func (h *ListDigests) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// ?view=grouped returns the latest digest merged by ticker instead of
	// the flat history.
	if r.URL.Query().Get("view") == "grouped" {
		latest, err := h.digest.Latest(r.Context())
		if err != nil {
			response.WriteInternalError(w, err.Error())
			return
		}
		if latest == nil {
			response.WriteNotFound(w, "no digest generated yet")
			return
		}
		response.WriteSuccess(w, "", h.digest.GroupedView(latest))
		return
	}

	history, err := h.digest.History(r.Context())
	if err != nil {
		response.WriteInternalError(w, err.Error())
		return
	}

	response.WriteSuccess(w, "", history)
}
