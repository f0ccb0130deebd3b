package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quicktime/optionchain/src/config"
	"github.com/quicktime/optionchain/src/eventmodels"
	"github.com/quicktime/optionchain/src/eventpubsub"
	"github.com/quicktime/optionchain/src/marketdata"
	"github.com/quicktime/optionchain/src/screen"
	"github.com/quicktime/optionchain/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "optionchain",
	Short: "Live options chain terminal for a market data provider",
}

func loadConfig(cmd *cobra.Command) *config.Config {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		log.Fatalf("error getting config: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	return cfg
}

func setup(cmd *cobra.Command) (*marketdata.Client, *config.Config) {
	cfg := loadConfig(cmd)

	apiKey, err := config.APIKey()
	if err != nil {
		log.Fatalf("%v", err)
	}

	return marketdata.NewClient(cfg.Provider.BaseURL, apiKey), cfg
}

var chainCmd = &cobra.Command{
	Use:   "chain [symbol]",
	Short: "Render the options chain for a symbol, optionally following live updates",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := setup(cmd)

		symbol := eventmodels.StockSymbol(cfg.DefaultSymbol)
		if len(args) > 0 {
			symbol = eventmodels.StockSymbol(args[0])
		}

		expiration, err := cmd.Flags().GetString("expiration")
		if err != nil {
			log.Fatalf("error getting expiration: %v", err)
		}

		optionTypeFlag, err := cmd.Flags().GetString("type")
		if err != nil {
			log.Fatalf("error getting type: %v", err)
		}

		optionType, err := eventmodels.NewOptionType(optionTypeFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}

		filter, err := cmd.Flags().GetString("filter")
		if err != nil {
			log.Fatalf("error getting filter: %v", err)
		}

		watch, err := cmd.Flags().GetBool("watch")
		if err != nil {
			log.Fatalf("error getting watch: %v", err)
		}

		exportPath, err := cmd.Flags().GetString("export")
		if err != nil {
			log.Fatalf("error getting export: %v", err)
		}

		apiKey, _ := config.APIKey()

		ctx := context.Background()

		eventpubsub.Init()

		streamer := marketdata.NewWsStreamer(cfg.Provider.WsURL, apiKey)
		if err := streamer.Start(ctx); err != nil {
			log.Fatalf("error starting streamer: %v", err)
		}
		defer streamer.Close()

		vm := screen.NewChainViewModel(client, streamer, symbol)
		defer vm.Unmount()

		if err := vm.Mount(ctx); err != nil {
			log.Fatalf("error mounting chain screen: %v", err)
		}

		if expiration != "" {
			if err := vm.SelectExpiration(ctx, eventmodels.ExpirationDate(expiration)); err != nil {
				log.Fatalf("error selecting expiration: %v", err)
			}
		}

		renderChain(client, vm, optionType, filter)

		if exportPath != "" {
			if err := exportChainCSV(vm.Contracts(), exportPath); err != nil {
				log.Fatalf("error exporting chain: %v", err)
			}

			log.Infof("exported chain to %s", exportPath)
		}

		if !watch {
			return
		}

		vm.OnChange(func() {
			renderChain(client, vm, optionType, filter)
		})

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote <symbol>",
	Short: "Fetch the latest quote for a symbol",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := setup(cmd)

		quote, err := client.FetchQuote(context.Background(), eventmodels.StockSymbol(args[0]))
		if err != nil {
			log.Fatalf("error fetching quote: %v", err)
		}

		renderQuote(quote)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for ticker symbols",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := setup(cmd)

		matches := client.SearchSymbols(context.Background(), args[0])
		renderMatches(matches)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current market status",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := setup(cmd)

		status := client.FetchMarketStatus(context.Background())
		fmt.Printf("market: %s (early hours: %v, after hours: %v)\n", status.Market, status.EarlyHours, status.AfterHours)
	},
}

func main() {
	rootCmd.PersistentFlags().String("config", "optionchain.yaml", "Path to the yaml config file.")

	chainCmd.Flags().String("expiration", "", "Expiration date (YYYY-MM-DD); defaults to the earliest available.")
	chainCmd.Flags().String("type", "call", "Option type to display: call or put.")
	chainCmd.Flags().String("filter", "", "Filter contracts by strike or open interest substring.")
	chainCmd.Flags().Bool("watch", false, "Keep the screen mounted and re-render on live updates.")
	chainCmd.Flags().String("export", "", "Write the chain to a csv file.")

	loginCmd.Flags().String("password", "", "Password for the account being signed in.")
	loginCmd.Flags().String("session-file", defaultSessionFile, "Path to the persisted session.")
	logoutCmd.Flags().String("session-file", defaultSessionFile, "Path to the persisted session.")

	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
