package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
)

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Currency commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Wallet
			if err := client.Get("/api/v1/wallet", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(newWalletChangeCmd("add", "Add currency"))
	cmd.AddCommand(newWalletChangeCmd("spend", "Spend currency"))

	return cmd
}

func newWalletChangeCmd(verb, short string) *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   verb + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("amount must be an integer")
			}

			req := request.CurrencyRequest{Currency: currency, Amount: amount}
			var result response.Wallet

			if err := client.Post("/api/v1/wallet/"+verb, req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "soft", "Currency: soft, hard")

	return cmd
}

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Inventory
			if err := client.Get("/api/v1/inventory", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(newInventoryChangeCmd("add", "Add items"))
	cmd.AddCommand(newInventoryChangeCmd("remove", "Remove items"))

	return cmd
}

func newInventoryChangeCmd(verb, short string) *cobra.Command {
	var amount int

	cmd := &cobra.Command{
		Use:   verb + " <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.ItemRequest{ItemID: args[0], Amount: amount}
			var result response.Inventory

			if err := client.Post("/api/v1/inventory/"+verb, req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&amount, "amount", "n", 1, "Quantity")

	return cmd
}

func newEquipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Equipment commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Equipment
			if err := client.Get("/api/v1/equipment", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "equip <slot> <item-id>",
		Short: "Equip an owned item into a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Equipment
			req := request.EquipRequest{Slot: args[0], ItemID: args[1]}
			if err := client.Post("/api/v1/equipment/equip", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unequip <slot>",
		Short: "Clear a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Equipment
			req := request.EquipRequest{Slot: args[0]}
			if err := client.Post("/api/v1/equipment/unequip", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}

func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Store commands",
	}

	cmd.AddCommand(newStoreCatalogCmd())
	cmd.AddCommand(newStoreBuyCmd())

	return cmd
}

func newStoreCatalogCmd() *cobra.Command {
	var category, itemType string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List purchasable items",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if category != "" {
				q.Set("category", category)
			}
			if itemType != "" {
				q.Set("type", itemType)
			}
			path := "/api/v1/catalog"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var result response.Catalog
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&itemType, "type", "", "Filter by item type")

	return cmd
}

func newStoreBuyCmd() *cobra.Command {
	var hard bool

	cmd := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Purchase an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.PurchaseRequest{ItemID: args[0], PreferHard: hard}
			var result response.Purchase

			if err := client.Post("/api/v1/store/purchase", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, "Pay with hard currency when the item has a hard price")

	return cmd
}
