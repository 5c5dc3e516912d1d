package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/healthease-api/internal/models"
	"github.com/harentsoaR/healthease-api/internal/session"
	"github.com/harentsoaR/healthease-api/internal/store"
	"github.com/harentsoaR/healthease-api/internal/utils"
)

var (
	mongoURI  string
	database  string
	fakeUsers int
	fakeSeed  uint64
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo portal data into MongoDB",
	Long: `seed fills every empty HealthEase collection with the demo dataset.
Collections that already hold records are left alone, so it is safe to rerun.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mongoURI == "" {
			return fmt.Errorf("no MongoDB URI: set MONGO_URI or pass --mongo-uri")
		}
		return seed(cmd.Context())
	},
}

var adminKeyCmd = &cobra.Command{
	Use:   "admin-key <key>",
	Short: "Print the ADMIN_KEY_HASH value for an admin registration key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args[0]) < 8 {
			return fmt.Errorf("admin key must be at least 8 characters")
		}
		hash, err := utils.HashPassword(args[0])
		if err != nil {
			return err
		}
		pterm.Println(hash)
		return nil
	},
}

func init() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "healthease"
	}
	rootCmd.Flags().StringVar(&mongoURI, "mongo-uri", os.Getenv("MONGO_URI"), "MongoDB connection URI")
	rootCmd.Flags().StringVar(&database, "database", dbName, "MongoDB database name")
	rootCmd.Flags().IntVar(&fakeUsers, "fake-users", 0, "Number of generated patient accounts to add")
	rootCmd.Flags().Uint64Var(&fakeSeed, "fake-seed", 0, "Seed for generated data (0 picks a random one)")
	rootCmd.AddCommand(adminKeyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func seed(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	if err := client.Ping(connectCtx, nil); err != nil {
		return fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(database)
	pterm.Info.Printf("Seeding database %q\n", database)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	repos := store.NewMongoRepositories(db)
	counts, err := store.Seed(ctx, repos, store.MockData(time.Now()))
	if err != nil {
		return err
	}

	if fakeUsers > 0 {
		n, err := insertFakeUsers(ctx, repos.Users, fakeUsers, fakeSeed)
		if err != nil {
			return err
		}
		counts["users (generated)"] = n
	}

	printCounts(counts)
	return nil
}

func insertFakeUsers(ctx context.Context, users store.Collection[models.User], n int, seed uint64) (int, error) {
	faker := gofakeit.New(seed)
	statuses := []string{string(models.UserActive), string(models.UserActive), string(models.UserInactive), string(models.UserPending)}
	start := time.Now().AddDate(-2, 0, 0)

	for i := 0; i < n; i++ {
		u := models.User{
			ID:           store.NewID(),
			Name:         faker.Name(),
			Email:        faker.Email(),
			Phone:        faker.Phone(),
			Role:         session.RolePatient,
			Status:       models.UserStatus(faker.RandomString(statuses)),
			JoinDate:     faker.DateRange(start, time.Now()).UTC(),
			Appointments: faker.Number(0, 15),
		}
		if err := users.Insert(ctx, u); err != nil {
			return i, fmt.Errorf("insert generated user %d: %w", i+1, err)
		}
	}
	return n, nil
}

func printCounts(counts store.SeedCounts) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	table := pterm.TableData{{"Collection", "Inserted"}}
	total := 0
	for _, name := range names {
		table = append(table, []string{name, strconv.Itoa(counts[name])})
		total += counts[name]
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(table).Render()

	if total == 0 {
		pterm.Warning.Println("Every collection already had data; nothing inserted.")
		return
	}
	pterm.Success.Printf("Inserted %d records\n", total)
}
