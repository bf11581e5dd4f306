// seed crea el primer administrador y el catálogo base de tipos de residuo.
//
// Uso: go run ./cmd/seed [correo-admin]
// La contraseña se lee de SEED_ADMIN_PASSWORD. Es idempotente: lo que ya existe se omite.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/config"
	"github.com/jhoicas/ecorecoleccion-api/pkg/logger"
)

var baseCatalog = []dto.WasteTypeRequest{
	{Name: "Plástico PET", Category: "plastico", BaseScore: decimal.NewFromInt(10), Description: "Botellas y envases PET limpios"},
	{Name: "Vidrio", Category: "vidrio", BaseScore: decimal.NewFromInt(8), Description: "Botellas y frascos sin tapa"},
	{Name: "Papel y cartón", Category: "papel", BaseScore: decimal.NewFromInt(5), Description: "Papel, periódico y cajas secas"},
	{Name: "Metal", Category: "metal", BaseScore: decimal.NewFromInt(12), Description: "Latas de aluminio y acero"},
	{Name: "Aparatos electrónicos", Category: "electronicos", BaseScore: decimal.NewFromInt(25), Description: "RAEE pequeños"},
	{Name: "Orgánicos", Category: "organico", BaseScore: decimal.NewFromInt(3), Description: "Residuos de cocina para compostaje"},
}

func main() {
	email := "admin@ecorecoleccion.co"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_PASSWORD es obligatorio")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	_, err = users.Create(ctx, dto.CreateUserRequest{
		UserName: "admin", Email: email, Password: password,
		FirstName: "Administrador", LastName: "Sistema", Role: authz.RoleAdmin.String(),
	})
	switch {
	case err == nil:
		log.Info().Str("email", email).Msg("administrador creado")
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrUserNameAlreadyExists):
		log.Info().Str("email", email).Msg("administrador ya existe")
	default:
		log.Fatal().Err(err).Msg("crear administrador")
	}

	wasteTypeRepo := postgres.NewWasteTypeRepository(pool)
	catalog := usecase.NewWasteTypeUseCase(wasteTypeRepo, postgres.NewCriterionRepository(pool))
	created := 0
	for _, wt := range baseCatalog {
		if _, err := catalog.Create(ctx, wt); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			log.Fatal().Err(err).Str("name", wt.Name).Msg("crear tipo de residuo")
		}
		created++
	}
	fmt.Printf("Catálogo base: %d creados, %d ya existían\n", created, len(baseCatalog)-created)
}
