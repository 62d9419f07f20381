package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytscout/ytscout/internal/service/credential"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage the API key pool",
	Long:  `Manage the pool of YouTube Data API keys used for searching.`,
}

// keysAddCmd adds keys to the pool
var keysAddCmd = &cobra.Command{
	Use:   "add [KEY...]",
	Short: "Add API keys to the pool",
	Long: `Add one or more API keys to the pool. Keys may be passed as arguments or
piped on stdin, one per line. Duplicates are ignored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.Join(args, "\n")
		if raw == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read keys from stdin: %w", err)
			}
			raw = string(data)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		manager, err := loadKeyManager(ctx, dbPool)
		if err != nil {
			return err
		}

		added, err := manager.Add(ctx, raw)
		if err != nil {
			return err
		}

		if added == 0 {
			fmt.Println("No new keys added.")
			return nil
		}
		fmt.Printf("Added %d key(s). Pool now holds %d.\n", added, manager.Pool().Len())
		return nil
	},
}

// keysListCmd lists the stored keys
var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored API keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		manager, err := loadKeyManager(ctx, dbPool)
		if err != nil {
			return err
		}

		pool := manager.Pool()
		if pool.Len() == 0 {
			fmt.Println("No API keys stored. Run 'ytscout keys add' to add some.")
			return nil
		}

		for i, key := range pool.Keys() {
			marker := " "
			if i == pool.CurrentIndex() {
				marker = "*"
			}
			fmt.Printf("%s %2d  %s\n", marker, i, key)
		}
		return nil
	},
}

// keysRemoveCmd removes one key by index
var keysRemoveCmd = &cobra.Command{
	Use:   "remove [INDEX]",
	Short: "Remove the API key at the given index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index: %s", args[0])
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		manager, err := loadKeyManager(ctx, dbPool)
		if err != nil {
			return err
		}

		if err := manager.Remove(ctx, index); err != nil {
			return err
		}
		fmt.Printf("Removed key %d. Pool now holds %d.\n", index, manager.Pool().Len())
		return nil
	},
}

// keysClearCmd removes every stored key
var keysClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored API keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		manager, err := loadKeyManager(ctx, dbPool)
		if err != nil {
			return err
		}

		if err := manager.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("All keys removed.")
		return nil
	},
}

// keysValidateCmd probes every stored key against the search endpoint
var keysValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every stored key against the API",
	Long:  `Probe each key with a minimal search call and report whether it works.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		_, dbPool, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer dbPool.Close()

		manager, err := loadKeyManager(ctx, dbPool)
		if err != nil {
			return err
		}

		pool := manager.Pool()
		if pool.Len() == 0 {
			fmt.Println("No API keys stored. Run 'ytscout keys add' to add some.")
			return nil
		}

		fmt.Printf("Validating %d key(s)...\n", pool.Len())
		validator := credential.NewValidator(youtube.NewClient())
		if err := validator.ValidateAll(ctx, pool); err != nil {
			return err
		}

		for i, key := range pool.Keys() {
			result, ok := pool.Validity(key)
			switch {
			case !ok:
				fmt.Printf("  %2d  ?  %s\n", i, key)
			case result.Valid:
				fmt.Printf("  %2d  ✅ %s\n", i, key)
			default:
				fmt.Printf("  %2d  ❌ %s (%s)\n", i, key, result.Reason)
			}
		}
		return nil
	},
}

func init() {
	keysCmd.AddCommand(keysAddCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysRemoveCmd)
	keysCmd.AddCommand(keysClearCmd)
	keysCmd.AddCommand(keysValidateCmd)
	rootCmd.AddCommand(keysCmd)
}
