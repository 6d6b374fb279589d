package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chadmarket/backoffice/internal/model"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the relational store",
		Long:  "Initialize the local schema or check connectivity to the configured store.",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBPingCmd())

	return cmd
}

// ---------- db init ----------

func newDBInitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the local schema",
		Long: `Create the accounts, listings, reports, and admin_roles tables.
Intended for local development against SQLite; the production schema is
owned by the managed backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(seed)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Insert a small demo data set")

	return cmd
}

func runDBInit(seed bool) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Println("Schema created.")

	if !seed {
		return nil
	}
	if err := seedDemoData(ctx, st); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Println("Demo data inserted.")
	return nil
}

func seedDemoData(ctx context.Context, st storeIface) error {
	doc := "kyc/demo-merchant/id.png"
	accounts := []model.Account{
		{ID: "demo-merchant", Email: "merchant@example.td", FullName: "Moussa Brahim",
			City: "N'Djamena", AccountType: model.AccountStandard,
			VerificationStatus: model.VerificationPending, IDDocumentPath: &doc,
			Status: model.StatusActive},
		{ID: "demo-buyer", Email: "buyer@example.td", FullName: "Amina Saleh",
			City: "Moundou", AccountType: model.AccountStandard,
			VerificationStatus: model.VerificationUnverified, Status: model.StatusActive},
	}
	for i := range accounts {
		if err := st.CreateAccount(ctx, &accounts[i]); err != nil {
			return err
		}
	}

	listing := model.Listing{ID: "demo-listing", Title: "Toyota Corolla 2014",
		Price: 4_500_000, Category: "auto", City: "N'Djamena",
		Status: model.ListingActive, OwnerID: "demo-merchant"}
	if err := st.CreateListing(ctx, &listing); err != nil {
		return err
	}

	report := model.Report{ID: "demo-report", ListingID: "demo-listing",
		ReporterID: "demo-buyer", Reason: "scam",
		Description: "Seller asks for payment outside the platform",
		Status:      model.ReportPending, CreatedAt: time.Now().UTC()}
	return st.CreateReport(ctx, &report)
}

// storeIface is the slice of the store the seeder needs.
type storeIface interface {
	CreateAccount(ctx context.Context, a *model.Account) error
	CreateListing(ctx context.Context, l *model.Listing) error
	CreateReport(ctx context.Context, r *model.Report) error
}

// ---------- db ping ----------

func newDBPingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBPing()
		},
	}

	return cmd
}

func runDBPing() error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := st.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	fmt.Printf("Store reachable (%s).\n", time.Since(start).Round(time.Millisecond))
	return nil
}
