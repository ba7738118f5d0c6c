// seed crea el primer usuario administrador en PostgreSQL y aplica las migraciones pendientes.
//
// Uso: go run ./cmd/seed <email> <password> [nombre]
// La conexión se toma de las mismas variables que la API (DATABASE_URL, DB_HOST, ...).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/romero-panificados/inventario-api/internal/application/auth"
	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/postgres"
	"github.com/romero-panificados/inventario-api/pkg/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed <email> <password> [nombre]")
		os.Exit(2)
	}
	email, password := os.Args[1], os.Args[2]
	nombre := "Administrador"
	if len(os.Args) > 3 {
		nombre = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	// El secreto JWT no se usa para crear usuarios.
	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
	user, err := uc.CreateUser(ctx, dto.CreateUserRequest{
		Email:    email,
		Password: password,
		Nombre:   nombre,
		Rol:      entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Printf("El usuario %s ya existe; no se modifica.\n", email)
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: %s (%s)\n", user.Email, user.ID)
}
