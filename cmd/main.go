package main

import (
	"net/http"
	"os"

	"github.com/alyssonlcss/api-leads/internal/auth"
	"github.com/alyssonlcss/api-leads/internal/distribuidor"
	"github.com/alyssonlcss/api-leads/internal/lead"
	"github.com/alyssonlcss/api-leads/internal/middleware"
	"github.com/alyssonlcss/api-leads/internal/models"
	"github.com/alyssonlcss/api-leads/internal/produto"
	"github.com/alyssonlcss/api-leads/internal/propriedaderural"
	"github.com/alyssonlcss/api-leads/internal/usuario"
	"github.com/alyssonlcss/api-leads/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	if err := auth.CarregarSegredo(); err != nil {
		log.Fatal().Err(err).Msg("configuração de autenticação inválida")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal().Err(err).Msg("erro ao conectar no banco")
	}

	if err := models.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("erro no AutoMigrate")
	}

	// Services: todos compartilham o resolvedor de distribuidor do usuário.
	usuarios := usuario.NewService()
	leadService := lead.NewService(usuarios)
	propriedadeService := propriedaderural.NewService(usuarios)
	produtoService := produto.NewService(usuarios)

	// Handlers
	authHandler := auth.NewHandler(database)
	usuarioHandler := usuario.NewHandler(database)
	distribuidorHandler := distribuidor.NewHandler(database)
	leadHandler := lead.NewHandler(database, leadService)
	propriedadeHandler := propriedaderural.NewHandler(database, propriedadeService)
	produtoHandler := produto.NewHandler(database, produtoService)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.Logger)

	// Rotas públicas
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/usuarios", usuarioHandler.Criar).Methods("POST")
	r.HandleFunc("/distribuidores", distribuidorHandler.Criar).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/distribuidores", distribuidorHandler.Listar).Methods("GET")
	api.HandleFunc("/distribuidores/{id}", distribuidorHandler.BuscarPorID).Methods("GET")

	api.HandleFunc("/leads", leadHandler.Criar).Methods("POST")
	api.HandleFunc("/leads", leadHandler.Listar).Methods("GET")
	api.HandleFunc("/leads/{id}", leadHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/leads/{id}", leadHandler.Atualizar).Methods("PATCH")
	api.HandleFunc("/leads/{id}", leadHandler.Deletar).Methods("DELETE")

	api.HandleFunc("/propriedades-rurais", propriedadeHandler.Criar).Methods("POST")
	api.HandleFunc("/propriedades-rurais", propriedadeHandler.Listar).Methods("GET")
	api.HandleFunc("/propriedades-rurais/{id}", propriedadeHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/propriedades-rurais/{id}", propriedadeHandler.Atualizar).Methods("PATCH")
	api.HandleFunc("/propriedades-rurais/{id}", propriedadeHandler.Deletar).Methods("DELETE")

	api.HandleFunc("/produtos", produtoHandler.Criar).Methods("POST")
	api.HandleFunc("/produtos", produtoHandler.Listar).Methods("GET")
	api.HandleFunc("/produtos/{id}", produtoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/produtos/{id}", produtoHandler.Atualizar).Methods("PATCH")
	api.HandleFunc("/produtos/{id}", produtoHandler.Deletar).Methods("DELETE")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	log.Info().Str("porta", porta).Msg("servidor no ar")
	if err := http.ListenAndServe(":"+porta, handler); err != nil {
		log.Fatal().Err(err).Msg("servidor encerrou")
	}
}
