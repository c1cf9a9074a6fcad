// Command timetable is the operator tool for the scheduling database: it prints the
// weekly timetable and section list of a term, shows audit trails and mints API tokens.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/yigit/unischedule/internal/app/models"
	appRepos "github.com/yigit/unischedule/internal/app/repositories"
	appServices "github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/bootstrap"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/db"
	pkgAuth "github.com/yigit/unischedule/internal/pkg/auth"
	"github.com/yigit/unischedule/internal/pkg/helpers"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "timetable",
		Usage: "inspect the section schedule",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config.yaml",
				Value:   bootstrap.ConfigPath(),
				EnvVars: []string{bootstrap.ConfigPathEnv},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "print",
				Usage:  "print the weekly timetable of a term, one table per day",
				Flags:  termFlags(),
				Action: printTimetable,
			},
			{
				Name:   "sections",
				Usage:  "list the sections of a term",
				Flags:  termFlags(),
				Action: listSections,
			},
			{
				Name:  "audit",
				Usage: "show the audit trail of a section",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "section", Usage: "section id", Required: true},
				},
				Action: showAudit,
			},
			{
				Name:  "token",
				Usage: "mint an access token for a user",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user-id", Usage: "user id", Required: true},
					&cli.StringFlag{Name: "role", Usage: "STUDENT, INSTRUCTOR or ADMIN", Value: string(models.RoleAdmin)},
					&cli.StringFlag{Name: "email", Usage: "email claim"},
				},
				Action: mintToken,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func termFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "semester", Aliases: []string{"s"}, Usage: "FALL, SPRING or SUMMER", Required: true},
		&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "academic year", Required: true},
	}
}

func termFrom(c *cli.Context) (models.Term, int, error) {
	semester, err := models.ParseTerm(c.String("semester"))
	if err != nil {
		return "", 0, cli.Exit(err.Error(), 2)
	}
	return semester, c.Int("year"), nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	// Keep stdout for tables
	logger.Configure(logger.Config{Level: logger.WarnLevel, Pretty: true, Output: os.Stderr})
	return cfg, nil
}

// withRepositories opens the pool for the duration of fn
func withRepositories(c *cli.Context, fn func(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()
	return fn(ctx, cfg, appRepos.NewRepositories(database.Pool))
}

func printTimetable(c *cli.Context) error {
	semester, year, err := termFrom(c)
	if err != nil {
		return err
	}
	return withRepositories(c, func(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories) error {
		sections := appServices.NewSectionService(repos.Store, nil, cfg.Scheduling, logger.Get())
		timetable, err := sections.GetWeeklyTimetable(ctx, semester, year)
		if err != nil {
			return err
		}
		renderTimetable(c.App.Writer, semester, year, timetable)
		return nil
	})
}

func listSections(c *cli.Context) error {
	semester, year, err := termFrom(c)
	if err != nil {
		return err
	}
	return withRepositories(c, func(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories) error {
		sections := appServices.NewSectionService(repos.Store, nil, cfg.Scheduling, logger.Get())
		list, err := sections.ListBySemester(ctx, semester, year)
		if err != nil {
			return err
		}
		renderSections(c.App.Writer, list)
		return nil
	})
}

func showAudit(c *cli.Context) error {
	return withRepositories(c, func(ctx context.Context, _ *config.Config, repos *appRepos.Repositories) error {
		logs, err := repos.AuditLogRepository.ListForEntity(ctx, models.AuditEntitySection, c.Int64("section"))
		if err != nil {
			return err
		}
		renderAudit(c.App.Writer, logs)
		return nil
	})
}

func mintToken(c *cli.Context) error {
	role := models.RoleType(c.String("role"))
	switch role {
	case models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
	default:
		return cli.Exit(fmt.Sprintf("unknown role %q", role), 2)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	token, expiresAt, err := jwtService.GenerateAccessToken(c.Int64("user-id"), c.String("email"), role)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	fmt.Fprintf(c.App.ErrWriter, "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
