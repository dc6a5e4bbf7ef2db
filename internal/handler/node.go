package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"lmstudio-node/internal/models"
)

type nodeService interface {
	Invoke(ctx context.Context, req *models.InvokeRequest) *models.InvokeResult
}

type NodeHandler struct {
	service nodeService
}

func NewNodeHandler(service nodeService) *NodeHandler {
	return &NodeHandler{
		service: service,
	}
}

// Invoke godoc
// @Summary Run the LM Studio chat node
// @Description Sends one chat completion to LM Studio over the SDK binding or the REST API. An optional image ([1,H,W,3] float pixel batch) is attached on the SDK path only. Dispatch failures are reported inside the response body, never as an HTTP error.
// @Tags node
// @Accept json
// @Produce json
// @Param request body models.InvokeRequest true "Invoke request"
// @Success 200 {object} models.InvokeResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /invoke [post]
func (h *NodeHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	var req models.InvokeRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %s", err), http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, fmt.Sprintf("request validation failed: %s", err), http.StatusBadRequest)
		return
	}

	res := h.service.Invoke(r.Context(), &req)

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
}

// Schema godoc
// @Summary Node input/output schema
// @Description Returns the input widgets and output declarations the graph host uses to render the node.
// @Tags node
// @Produce json
// @Success 200 {object} models.NodeSchema
// @Router /schema [get]
func (h *NodeHandler) Schema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(models.Schema()); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
}
