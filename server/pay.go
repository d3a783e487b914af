package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go-commodity-market/domain"
	"go-commodity-market/payment"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var payFlags struct {
	commodity     string
	quantity      string
	loanCommodity string
	loanQuantity  string
	amount        string
}

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Settle a payment against a loan and print what is still owed",
	Example: `  market pay --catalog catalog.yaml --commodity Widget --quantity 5 \
    --loan Widget --loan-quantity 3 --amount 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(os.Stderr, env.LogLevel)
		if err != nil {
			return err
		}

		m, err := newMarket(cmd.Context(), env, logger)
		if err != nil {
			return err
		}
		defer m.Close()

		return pay(cmd, m.payments, cmd.OutOrStdout())
	},
}

func init() {
	payCmd.Flags().StringVar(&payFlags.commodity, "commodity", "", "commodity paid with")
	payCmd.Flags().StringVar(&payFlags.quantity, "quantity", "1", "quantity paid")
	payCmd.Flags().StringVar(&payFlags.loanCommodity, "loan", "", "commodity owed")
	payCmd.Flags().StringVar(&payFlags.loanQuantity, "loan-quantity", "1", "quantity owed")
	payCmd.Flags().StringVar(&payFlags.amount, "amount", "", "payment amount")
	_ = payCmd.MarkFlagRequired("commodity")
	_ = payCmd.MarkFlagRequired("loan")
	_ = payCmd.MarkFlagRequired("amount")
}

func pay(cmd *cobra.Command, payments payment.Service, w io.Writer) error {
	ctx := cmd.Context()

	quantity, err := domain.ParseQuantity(payFlags.quantity)
	if err != nil {
		return fmt.Errorf("--quantity: %w", err)
	}
	loanQuantity, err := domain.ParseQuantity(payFlags.loanQuantity)
	if err != nil {
		return fmt.Errorf("--loan-quantity: %w", err)
	}
	amount, err := domain.ParseQuantity(payFlags.amount)
	if err != nil {
		return fmt.Errorf("--amount: %w", err)
	}

	paid, err := payments.BuildPaymentBasket(ctx, payFlags.commodity, quantity)
	if err != nil {
		return err
	}
	loan, err := payments.BuildLoanBasket(ctx, payFlags.loanCommodity, loanQuantity)
	if err != nil {
		return err
	}

	printStats(w, "Paid", paid.DumpStats())
	printStats(w, "Owed", loan.DumpStats())

	settlement, err := payments.Settle(ctx, paid, loan, amount)
	if err != nil {
		return err
	}

	printStats(w, "Change", []domain.Stat{settlement.Change.Stat()})
	printStats(w, "Remaining", settlement.Remaining.DumpStats())
	return nil
}

// printStats writes stats as an aligned table. Amounts are rounded to four
// places without passing through float64.
func printStats(w io.Writer, title string, stats []domain.Stat) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%s\n", title)
	p.Fprintf(w, "  %-24s %14s %14s %16s\n", "name", "valuation", "quantity", "subtotal")
	for _, s := range stats {
		p.Fprintf(w, "  %-24s %14s %14s %16s\n",
			s.Name, s.Valuation.StringFixed(4), s.Quantity.StringFixed(4), s.Subtotal.StringFixed(4))
	}
}
