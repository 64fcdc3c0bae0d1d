package lead

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/auth"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Service *Service
}

func NewHandler(db *gorm.DB, service *Service) *Handler {
	return &Handler{DB: db, Service: service}
}

// POST /leads
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	criado, err := h.Service.Create(h.DB, req)
	if err != nil {
		log.Warn().Err(err).Str("cpf", NormalizarCPF(req.CPF)).Msg("falha ao criar lead")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(criado)
}

// GET /leads
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	filtros := filtrosDaQuery(r)
	leads, err := h.Service.FindAll(h.DB, usuarioID, filtros)
	if err != nil {
		log.Warn().Err(err).Uint("usuario", usuarioID).Msg("falha ao listar leads")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leads)
}

// GET /leads/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	l, err := h.Service.FindOne(h.DB, uint(id), usuarioID)
	if err != nil {
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(l)
}

// PATCH /leads/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	atualizado, err := h.Service.Update(h.DB, uint(id), req, usuarioID)
	if err != nil {
		log.Warn().Err(err).Int("lead", id).Msg("falha ao atualizar lead")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atualizado)
}

// DELETE /leads/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Service.Remove(h.DB, uint(id), usuarioID); err != nil {
		log.Warn().Err(err).Int("lead", id).Msg("falha ao remover lead")
		apperror.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// filtrosDaQuery monta o Filtro a partir da query string. A mera presença de
// distribuidorId liga o modo atribuído.
func filtrosDaQuery(r *http.Request) Filtro {
	q := r.URL.Query()
	f := Filtro{
		Nome:       q.Get("nome"),
		CPF:        NormalizarCPF(q.Get("cpf")),
		Status:     q.Get("status"),
		Comentario: q.Get("comentario"),
		Email:      q.Get("email"),
		Telefone:   q.Get("telefone"),
	}
	if v := q.Get("distribuidorId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			d := uint(id)
			f.DistribuidorID = &d
		}
	}
	return f
}
