package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/opugacodez/frutaria/internal/app"
	"github.com/opugacodez/frutaria/internal/model"
	"github.com/opugacodez/frutaria/internal/seed"
	"github.com/opugacodez/frutaria/internal/service"
	"github.com/opugacodez/frutaria/internal/store"
)

const usage = "expected 'demo' or 'add-user' subcommand"

func main() {
	_ = godotenv.Load()

	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	name := addUserCmd.String("name", "", "First name")
	lastname := addUserCmd.String("lastname", "", "Last name")
	email := addUserCmd.String("email", "", "Email used to log in")
	password := addUserCmd.String("password", "", "Password")
	admin := addUserCmd.Bool("admin", false, "Grant access to the product control page")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := app.LoadConfig()
	stores, err := store.Open(store.Options{Driver: cfg.StoreDriver, DataDir: cfg.DataDir, DSN: cfg.DBDSN})
	if err != nil {
		fail("open store", err)
	}
	defer stores.Close()
	ctx := context.Background()

	switch os.Args[1] {
	case "demo":
		if err := seed.Demo(ctx, stores); err != nil {
			fail("seed demo data", err)
		}
		fmt.Println("Demo catalog written.")
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		users := service.NewUserService(stores.Users, stores.Carts)
		u, err := users.Create(ctx, model.UserPatch{
			Name:     name,
			Lastname: lastname,
			Email:    email,
			Password: password,
			Admin:    admin,
		})
		if err != nil {
			fail("create user", err)
		}
		fmt.Printf("User '%s' created with id %d.\n", u.Email, u.ID)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
