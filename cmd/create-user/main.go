package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/database"
	"github.com/unifylabs/unify-backend/internal/logger"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
	"github.com/unifylabs/unify-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	authService := service.NewAuthService(cfg, nil)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Portal User ===")

	// Name
	fmt.Print("Enter Full Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Role
	fmt.Print("Enter Role (student/staff): ")
	roleInput, _ := reader.ReadString('\n')
	role := model.Role(strings.TrimSpace(roleInput))
	if role != model.RoleStudent && role != model.RoleStaff {
		fmt.Println("Error: Role must be 'student' or 'staff'")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	hash, err := authService.HashPassword(password)
	if err != nil {
		fmt.Printf("Error: hashing failed: %v\n", err)
		return
	}

	user := model.User{
		Email:        email,
		FullName:     name,
		Role:         role,
		PasswordHash: hash,
	}
	if err := userRepo.Create(ctx, &user); err != nil {
		fmt.Printf("Error: creating user failed: %v\n", err)
		return
	}

	// Student accounts also get an academic profile.
	if role == model.RoleStudent {
		fmt.Print("Enter Program (e.g. BSc Computer Science): ")
		program, _ := reader.ReadString('\n')
		program = strings.TrimSpace(program)

		fmt.Print("Enter Cohort Year (e.g. 2026): ")
		yearInput, _ := reader.ReadString('\n')
		cohortYear, err := strconv.Atoi(strings.TrimSpace(yearInput))
		if err != nil {
			fmt.Println("Error: invalid cohort year")
			return
		}

		student := model.Student{
			UserID:     user.ID,
			Program:    program,
			CohortYear: cohortYear,
		}
		if err := studentRepo.Create(ctx, &student); err != nil {
			fmt.Printf("Error: creating student profile failed: %v\n", err)
			return
		}
	}

	fmt.Printf("User %q (%s) created with ID %d\n", name, role, user.ID)
}
