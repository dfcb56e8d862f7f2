package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/consentapp/consent-client-core/internal/biometric"
	"github.com/consentapp/consent-client-core/internal/consent"
	"github.com/consentapp/consent-client-core/internal/gateway"
	"github.com/consentapp/consent-client-core/internal/model"
	"github.com/consentapp/consent-client-core/internal/notification"
	"github.com/consentapp/consent-client-core/internal/payment"
	"github.com/consentapp/consent-client-core/internal/session"
	"github.com/consentapp/consent-client-core/internal/system/config"
	"github.com/consentapp/consent-client-core/internal/system/log"
	"github.com/consentapp/consent-client-core/internal/system/securestore"
)

const configFile = "config/client.yaml"

func main() {
	appHome := flag.String("appHome", "", "Path to the client home directory")
	op := flag.String("do", "route", "Operation: login, signup, whoami, route, profile, contacts, create, history, accept, refuse, notifications, mark-read, charter, buy, logout")
	email := flag.String("email", "", "Account email")
	password := flag.String("password", "", "Account password")
	firstName := flag.String("first-name", "", "First name (signup)")
	lastName := flag.String("last-name", "", "Last name (signup, optional)")
	avatar := flag.String("avatar", "", "Avatar URL (profile)")
	partner := flag.String("partner", "", "Partner email (create)")
	message := flag.String("message", "", "Consent message (create)")
	consentType := flag.String("type", "", "Consent type (create)")
	consentID := flag.String("id", "", "Consent id (accept, refuse)")
	quantity := flag.Int("quantity", 1, "Pack quantity (buy)")
	flag.Parse()

	home := resolveAppHome(*appHome)

	envFiles, _ := filepath.Glob(filepath.Join(home, "config", "*.env"))
	_ = godotenv.Load(envFiles...)

	cfg, err := config.LoadConfig(home, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitializeClientRuntime(home, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize runtime: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	tokens, err := buildTokenStore(*cfg)
	if err != nil {
		logger.Fatal("Failed to build the token store", log.Error(err))
	}

	gw := gateway.NewClient(*cfg, tokens)
	sessions := session.NewStore(gw, tokens)
	verifier := biometric.ForDevice(cfg.Biometric.Enabled, promptVerifier{})
	lifecycle := consent.NewLifecycle(gw, sessions, verifier)
	notifications := notification.NewService(gw)
	payments := payment.NewService(gw, sessions)

	ctx := context.Background()

	if err := run(ctx, *op, runDeps{
		cfg:           cfg,
		gw:            gw,
		sessions:      sessions,
		lifecycle:     lifecycle,
		notifications: notifications,
		payments:      payments,
	}, opArgs{
		email:       *email,
		password:    *password,
		firstName:   *firstName,
		lastName:    *lastName,
		avatar:      *avatar,
		partner:     *partner,
		message:     *message,
		consentType: *consentType,
		consentID:   *consentID,
		quantity:    *quantity,
	}); err != nil {
		logger.Error("Operation failed", log.String("op", *op), log.Error(err))
		os.Exit(1)
	}
}

type runDeps struct {
	cfg           *config.Config
	gw            *gateway.Client
	sessions      *session.Store
	lifecycle     *consent.Lifecycle
	notifications *notification.Service
	payments      *payment.Service
}

type opArgs struct {
	email, password        string
	firstName, lastName    string
	avatar                 string
	partner, message       string
	consentType, consentID string
	quantity               int
}

func run(ctx context.Context, op string, deps runDeps, args opArgs) error {
	switch op {
	case "login":
		user, err := deps.sessions.Login(ctx, args.email, args.password)
		if err != nil {
			return err
		}
		return printJSON(user)

	case "signup":
		resp, err := deps.gw.Signup(ctx, model.SignupRequest{
			FirstName: args.firstName,
			LastName:  args.lastName,
			Email:     args.email,
			Password:  args.password,
		})
		if err != nil {
			return err
		}
		return printJSON(resp.User)

	case "whoami":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		return printJSON(deps.sessions.Snapshot().User)

	case "route":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		fmt.Println(deps.sessions.Route())
		return nil

	case "profile":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		user, err := deps.gw.UpdateProfile(ctx, model.ProfileUpdate{
			FirstName: args.firstName,
			LastName:  args.lastName,
			AvatarURL: args.avatar,
		})
		if err != nil {
			return err
		}
		return printJSON(user)

	case "contacts":
		contacts, err := deps.gw.ListContacts(ctx)
		if err != nil {
			return err
		}
		return printJSON(contacts)

	case "create":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		resp, err := deps.lifecycle.Create(ctx, args.partner, model.ConsentDraft{
			Message: args.message,
			Type:    args.consentType,
		})
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "history":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		viewer := deps.sessions.Snapshot().User
		for _, c := range deps.lifecycle.History(ctx) {
			entry := c
			summary := consent.Summarize(&entry, viewerID(viewer))
			fmt.Printf("%s  [%s]  %s\n", entry.ID, entry.Status, summary.Headline)
		}
		return nil

	case "accept":
		return resolveConsent(ctx, deps, args.consentID, deps.lifecycle.Accept)

	case "refuse":
		return resolveConsent(ctx, deps, args.consentID, deps.lifecycle.Refuse)

	case "notifications":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		return printJSON(deps.notifications.Unread(ctx))

	case "mark-read":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		return deps.notifications.MarkAllRead(ctx)

	case "charter":
		charter, err := deps.gw.ConsentCharter(ctx)
		if err != nil {
			return err
		}
		fmt.Println(charter.Title.String())
		fmt.Println(charter.Content.String())
		return nil

	case "buy":
		if err := deps.sessions.Restore(ctx); err != nil {
			return err
		}
		sheet, err := deps.payments.PurchasePacks(ctx, args.quantity)
		if err != nil {
			return err
		}
		return printJSON(sheet)

	case "logout":
		deps.sessions.Logout()
		deps.gw.FlushCache()
		return nil

	default:
		return fmt.Errorf("unknown operation: %s", op)
	}
}

// resolveConsent loads the consent from history and applies the transition.
func resolveConsent(
	ctx context.Context,
	deps runDeps,
	id string,
	action func(ctx context.Context, c *model.Consent) error,
) error {
	if err := deps.sessions.Restore(ctx); err != nil {
		return err
	}
	for _, c := range deps.lifecycle.History(ctx) {
		if c.ID == model.ID(id) {
			entry := c
			return action(ctx, &entry)
		}
	}
	return fmt.Errorf("consent %s not found in history", id)
}

// promptVerifier stands in for the device biometric prompt when running in
// a terminal: the user confirms interactively.
type promptVerifier struct{}

func (promptVerifier) Verify(ctx context.Context) (biometric.Result, error) {
	fmt.Print("Confirm your identity [y/N]: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return biometric.Result{OK: false, Reason: "no confirmation input"}, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "y" || answer == "yes" {
		return biometric.Result{OK: true}, nil
	}
	return biometric.Result{OK: false, Reason: "confirmation declined"}, nil
}

func buildTokenStore(cfg config.Config) (securestore.TokenStore, error) {
	if !cfg.Session.PersistToken {
		return securestore.NewMemoryStore(), nil
	}
	path := cfg.Session.TokenStorePath
	if path == "" {
		path = filepath.Join(config.GetClientRuntime().AppHome, "var", "token")
	}
	return securestore.NewFileStore(path, cfg.Session.DeviceSecret)
}

func resolveAppHome(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func viewerID(user *model.User) model.ID {
	if user == nil {
		return ""
	}
	return user.ID
}

func printJSON(v interface{}) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
