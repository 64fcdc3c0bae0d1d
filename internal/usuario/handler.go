package usuario

import (
	"encoding/json"
	"net/http"

	"github.com/alyssonlcss/api-leads/internal/apperror"
	"github.com/alyssonlcss/api-leads/internal/models"
	"github.com/alyssonlcss/api-leads/internal/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type criarUsuarioRequest struct {
	Email          string `json:"email"`
	Nome           string `json:"nome"`
	DistribuidorID uint   `json:"distribuidorId"`
	Username       string `json:"username"`
	Senha          string `json:"senha"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /usuarios — cadastro de seed/admin: cria o usuário e as credenciais
// dele numa transação só.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Username == "" || req.Senha == "" || req.DistribuidorID == 0 {
		http.Error(w, "email, username, senha e distribuidorId são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := models.Usuario{
		Email:          req.Email,
		Nome:           req.Nome,
		DistribuidorID: req.DistribuidorID,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return apperror.Translate(err, "", "email já cadastrado")
		}
		cred := models.Credenciais{
			Username:     req.Username,
			PasswordHash: hash,
			UsuarioID:    u.ID,
		}
		if err := tx.Create(&cred).Error; err != nil {
			return apperror.Translate(err, "", "username já cadastrado")
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("falha ao criar usuário")
		apperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}
