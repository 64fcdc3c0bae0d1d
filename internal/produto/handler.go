package produto

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/auth"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Service *Service
}

func NewHandler(db *gorm.DB, service *Service) *Handler {
	return &Handler{DB: db, Service: service}
}

// POST /produtos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	var req CreateProdutoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Create(h.DB, req, usuarioID)
	if err != nil {
		log.Warn().Err(err).Str("nome", req.Nome).Msg("falha ao criar produto")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// GET /produtos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	produtos, err := h.Service.FindAll(h.DB, usuarioID, filtrosDaQuery(r))
	if err != nil {
		log.Warn().Err(err).Uint("usuario", usuarioID).Msg("falha ao listar produtos")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(produtos)
}

// GET /produtos/{id}
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

// PATCH /produtos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req UpdateProdutoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Update(h.DB, uint(id), req, usuarioID)
	if err != nil {
		log.Warn().Err(err).Int("produto", id).Msg("falha ao atualizar produto")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// DELETE /produtos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	usuarioID := r.Context().Value(auth.CtxUsuarioID).(uint)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Service.Remove(h.DB, uint(id), usuarioID); err != nil {
		log.Warn().Err(err).Int("produto", id).Msg("falha ao remover produto")
		apperror.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filtrosDaQuery(r *http.Request) Filtro {
	q := r.URL.Query()
	f := Filtro{
		Nome:          q.Get("nome"),
		UnidadeMedida: q.Get("unidadeMedida"),
	}
	if v := q.Get("custoUnidade"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.CustoUnidade = &d
		}
	}
	if v := q.Get("distribuidorId"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			id := uint(n)
			f.DistribuidorID = &id
		}
	}
	if cats, ok := r.URL.Query()["categoria"]; ok && len(cats) > 0 {
		f.Categoria = cats
	}
	return f
}
