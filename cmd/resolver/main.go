package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nar-resolver/internal/config"
	"github.com/nar-resolver/internal/db"
	"github.com/nar-resolver/internal/format"
	"github.com/nar-resolver/internal/nar"
	"github.com/nar-resolver/internal/resolver"
	"github.com/nar-resolver/internal/store"
	"github.com/nar-resolver/internal/tagger"
)

var (
	dbConn        *db.Connection
	registerStore *store.Postgres
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	var err error
	dbConn, err = db.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	registerStore, err = store.NewPostgres(dbConn.DB, db.TableName())
	if err != nil {
		log.Fatalf("Failed to open register store: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "resolver",
		Short: "National Address Register resolution",
		Long:  `Resolves free-text postal addresses against the National Address Register`,
	}

	rootCmd.AddCommand(createResolveCmd())
	rootCmd.AddCommand(createReverseCmd())
	rootCmd.AddCommand(createFormatCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createResolveCmd creates the resolve subcommand.
func createResolveCmd() *cobra.Command {
	var debugFlag bool

	cmd := &cobra.Command{
		Use:   "resolve [address]",
		Short: "Resolve a free-text address to a register identifier",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			r := resolver.New(registerStore, tagger.NewPostal())
			r.Debug = debugFlag

			resolution, err := r.FindAddress(context.Background(), args[0])
			if err != nil {
				log.Fatalf("Resolution failed: %v", err)
			}

			switch resolution.Kind {
			case nar.NoMatch:
				fmt.Println("no match")
			default:
				fmt.Printf("%s %s\n", resolution.Kind, resolution.GUID)
			}
		},
	}

	cmd.Flags().BoolVar(&debugFlag, "debug", config.GetEnvBool("RESOLVER_DEBUG", false), "trace resolution stages")
	return cmd
}

// createReverseCmd creates the reverse subcommand.
func createReverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse [latitude] [longitude]",
		Short: "Find the register entry nearest a coordinate",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			lat, errLat := strconv.ParseFloat(args[0], 64)
			lon, errLon := strconv.ParseFloat(args[1], 64)
			if errLat != nil || errLon != nil {
				log.Fatalf("Invalid coordinates: %s %s", args[0], args[1])
			}

			guid, distance, err := registerStore.ReverseGeocode(context.Background(), lat, lon)
			if err != nil {
				log.Fatalf("Reverse lookup failed: %v", err)
			}
			if guid == "" {
				fmt.Println("no match")
				return
			}
			fmt.Printf("%s (%.1fm)\n", guid, distance)
		},
	}
}

// createFormatCmd creates the format subcommand.
func createFormatCmd() *cobra.Command {
	var mailing, oneLine bool

	cmd := &cobra.Command{
		Use:   "format [guid]",
		Short: "Render a register entry as a civic or mailing address",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			record, err := format.Base(context.Background(), registerStore, args[0])
			if err != nil {
				log.Fatalf("Lookup failed: %v", err)
			}
			if record == nil {
				log.Fatalf("Unknown guid: %s", args[0])
			}

			if mailing {
				fmt.Println(format.Mailing(record, oneLine))
			} else {
				fmt.Println(format.Civic(record, oneLine))
			}
		},
	}

	cmd.Flags().BoolVar(&mailing, "mailing", false, "render the mailing address instead of the civic address")
	cmd.Flags().BoolVar(&oneLine, "one-line", false, "join lines with commas")
	return cmd
}

// createPingCmd creates a command to test register connectivity.
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test register connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			var count int
			query := fmt.Sprintf("SELECT COUNT(*) FROM %s", db.TableName())
			if err := dbConn.DB.QueryRow(query).Scan(&count); err != nil {
				log.Fatalf("Error counting register records: %v", err)
			}
			fmt.Printf("Register records loaded: %d\n", count)
		},
	}
}
