package cmd

import (
	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/dashboard"
	"github.com/spf13/cobra"
)

// NewPaymentMethodsCmd creates the payment-methods command group
func NewPaymentMethodsCmd(c *cli.Container) *cobra.Command {
	pmCmd := &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "payment-methods",
		Aliases: []string{"pm"},
		Short:   "Manage payment methods",
		Long:    "List the cards attached to your customer account, choose the default one or attach a new card.",
	}

	pmCmd.AddCommand(
		newPaymentMethodsListCmd(c),
		newPaymentMethodsSetDefaultCmd(c),
		newPaymentMethodsAttachCmd(c),
	)
	return pmCmd
}

func newPaymentMethodsListCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List payment methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.Dashboard()
			if err != nil {
				return err
			}
			return h.LoadPaymentMethods(cmd.Context())
		},
	}
}

func newPaymentMethodsSetDefaultCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <payment-method-id>",
		Short: "Make a payment method the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.Dashboard()
			if err != nil {
				return err
			}
			return h.SetDefaultPaymentMethod(cmd.Context(), args[0])
		},
	}
}

func newPaymentMethodsAttachCmd(c *cli.Container) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach a tokenized card",
		Long: `Attach a card that was already tokenized by the payment provider.

Card numbers never pass through nexusctl; supply the payment method token
(pm_...) returned by the provider.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.Dashboard()
			if err != nil {
				return err
			}

			secret, err := h.CreateSetupSecret(cmd.Context())
			if err != nil {
				return err
			}

			dialog := dashboard.NewConsoleDialog(c.Out, c.Theme)
			flow := dashboard.NewAttachFlow(h, dialog, dashboard.StaticTokenizer{Token: token})
			return flow.Submit(cmd.Context(), secret, dashboard.CardDetails{})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Payment method token issued by the payment provider")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}
