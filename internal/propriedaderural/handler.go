package propriedaderural

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

// POST /propriedades-rurais
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CreatePropriedadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Create(h.DB, req)
	if err != nil {
		log.Warn().Err(err).Uint("lead", req.LeadID).Msg("falha ao criar propriedade rural")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// GET /propriedades-rurais
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	props, err := h.Service.FindAll(h.DB, usuarioID, filtrosDaQuery(r))
	if err != nil {
		log.Warn().Err(err).Uint("usuario", usuarioID).Msg("falha ao listar propriedades")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(props)
}

// GET /propriedades-rurais/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.FindOne(h.DB, uint(id), usuarioID)
	if err != nil {
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// PATCH /propriedades-rurais/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req UpdatePropriedadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Update(h.DB, uint(id), req, usuarioID)
	if err != nil {
		log.Warn().Err(err).Int("propriedade", id).Msg("falha ao atualizar propriedade")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// DELETE /propriedades-rurais/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Service.Remove(h.DB, uint(id), usuarioID); err != nil {
		log.Warn().Err(err).Int("propriedade", id).Msg("falha ao remover propriedade")
		apperror.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filtrosDaQuery(r *http.Request) Filtro {
	q := r.URL.Query()
	f := Filtro{
		Nome:      q.Get("nome"),
		Cultura:   q.Get("cultura"),
		UF:        q.Get("uf"),
		Cidade:    q.Get("cidade"),
		Geometria: q.Get("geometria"),
	}
	if v := q.Get("hectares"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.Hectares = &n
		}
	}
	if v := q.Get("leadId"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			id := uint(n)
			f.LeadID = &id
		}
	}
	if v := q.Get("distribuidorId"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			id := uint(n)
			f.DistribuidorID = &id
		}
	}
	if v := q.Get("latitude"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.Latitude = &n
		}
	}
	if v := q.Get("longitude"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.Longitude = &n
		}
	}
	return f
}
