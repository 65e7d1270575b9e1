// Package cli implementa los comandos de petctl, el cliente de línea de
// comandos que corre el loop de sincronización contra la API.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"community-pet/internal/client"
	"community-pet/internal/platform/config"
	"community-pet/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	instanceID string
	userID     string
	username   string
	token      string
	formatFlag string

	cfg config.Client
)

// RootCmd es el comando raíz.
var RootCmd = &cobra.Command{
	Use:   "petctl",
	Short: "Cliente de la mascota comunitaria",
	Long:  "Lee y modifica la mascota compartida de una instancia. Los flags pisan PET_API_URL, PET_INSTANCE_ID, PET_USER_ID, PET_USERNAME y PET_TOKEN.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadClient()
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlags(cmd)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "URL de la API (default: $PET_API_URL)")
	RootCmd.PersistentFlags().StringVarP(&instanceID, "instance", "i", "", "Instancia de la mascota (default: $PET_INSTANCE_ID)")
	RootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "User id en modo dev (default: $PET_USER_ID)")
	RootCmd.PersistentFlags().StringVar(&username, "username", "", "Nombre visible en el feed (default: $PET_USERNAME)")
	RootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token del host (default: $PET_TOKEN)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Formato de salida: json o text")
}

func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("api") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("instance") {
		cfg.InstanceID = instanceID
	}
	if flags.Changed("user") {
		cfg.UserID = userID
	}
	if flags.Changed("username") {
		cfg.Username = username
	}
	if flags.Changed("token") {
		cfg.Token = token
	}
}

func newAPI() (*client.API, error) {
	return client.NewAPI(cfg.APIURL, client.Identity{
		InstanceID: cfg.InstanceID,
		UserID:     cfg.UserID,
		Username:   cfg.Username,
		Token:      cfg.Token,
	}, 0)
}

func newLogger() logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
		Output: os.Stderr,
	})
}

// newSession arma API + sesión y trae el estado compartido actual.
func newSession(cmd *cobra.Command) (*client.Session, error) {
	api, err := newAPI()
	if err != nil {
		return nil, err
	}
	s := client.NewSession(api, newLogger())
	if err := s.ReconcilePet(cmd.Context()); err != nil {
		return nil, fmt.Errorf("read pet state: %w", err)
	}
	return s, nil
}

// printOut escribe v como JSON o, en modo text, con text().
func printOut(w io.Writer, v any, text func(io.Writer)) {
	if formatFlag == "json" {
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(w, string(b))
		return
	}
	text(w)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
