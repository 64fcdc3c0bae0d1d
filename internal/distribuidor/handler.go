package distribuidor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Distribuidores são dado de seed/admin: o núcleo nunca os apaga.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /distribuidores
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var d models.Distribuidor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if d.CNPJ == "" || d.Nome == "" {
		http.Error(w, "cnpj e nome são obrigatórios", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Salvar(h.DB, &d); err != nil {
		log.Warn().Err(err).Str("cnpj", d.CNPJ).Msg("falha ao criar distribuidor")
		apperror.Write(w, apperror.Translate(err, "", "CNPJ já cadastrado"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// GET /distribuidores
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	distribuidores, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar distribuidores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(distribuidores)
}

// GET /distribuidores/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	d, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		apperror.Write(w, apperror.Translate(err, "distribuidor não encontrado", ""))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}
