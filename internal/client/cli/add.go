package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bizsync/bizsync/internal/models"
)

var addUsage = "Usage: bizsync add <customer|order|payment|project> [--sync]"

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record type. %s", addUsage)
	}

	syncAfter := false
	for _, arg := range args[1:] {
		if arg == "--sync" {
			syncAfter = true
			break
		}
	}

	entityType, err := parseEntityTypeArg(args[0])
	if err != nil {
		return fmt.Errorf("%w. %s", err, addUsage)
	}

	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	var payload map[string]any
	switch entityType {
	case models.EntityCustomers:
		payload, err = c.promptCustomer()
	case models.EntityOrders:
		payload, err = c.promptOrder()
	case models.EntityPayments:
		payload, err = c.promptPayment()
	case models.EntityProjects:
		payload, err = c.promptProject()
	}
	if err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	now := time.Now().UTC()
	record := &models.Record{
		LogicalID:  uuid.New().String(),
		EntityType: entityType,
		CreatedBy:  session.Username,
		SyncStatus: models.SyncStatusUnsynced,
		Payload:    raw,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.records.SaveRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Record saved locally!")
	c.io.Printf("ID: %s\n", record.LogicalID)

	if syncAfter {
		c.io.Println()
		return c.runSync(ctx)
	}

	c.io.Println("Run 'bizsync sync' to push it to the server.")
	return nil
}

func (c *Cli) promptCustomer() (map[string]any, error) {
	c.io.Println("=== Add Customer ===")
	c.io.Println()

	name, err := c.readRequired("Name: ")
	if err != nil {
		return nil, err
	}
	email, err := c.io.ReadInput("Email (optional): ")
	if err != nil {
		return nil, err
	}
	phone, err := c.io.ReadInput("Phone (optional): ")
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"name": name}
	if email != "" {
		payload["email"] = email
	}
	if phone != "" {
		payload["phone"] = phone
	}
	return payload, nil
}

func (c *Cli) promptOrder() (map[string]any, error) {
	c.io.Println("=== Add Order ===")
	c.io.Println()

	customerID, err := c.readRequired("Customer ID: ")
	if err != nil {
		return nil, err
	}
	description, err := c.readRequired("Description: ")
	if err != nil {
		return nil, err
	}
	amount, err := c.readAmount("Amount: ")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"customer_id": customerID,
		"description": description,
		"amount":      amount,
	}, nil
}

func (c *Cli) promptPayment() (map[string]any, error) {
	c.io.Println("=== Add Payment ===")
	c.io.Println()

	orderID, err := c.readRequired("Order ID: ")
	if err != nil {
		return nil, err
	}
	amount, err := c.readAmount("Amount: ")
	if err != nil {
		return nil, err
	}
	method, err := c.io.ReadInput("Method (cash, card, transfer): ")
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"order_id": orderID,
		"amount":   amount,
	}
	if method != "" {
		payload["method"] = method
	}
	return payload, nil
}

func (c *Cli) promptProject() (map[string]any, error) {
	c.io.Println("=== Add Project ===")
	c.io.Println()

	name, err := c.readRequired("Name: ")
	if err != nil {
		return nil, err
	}
	customerID, err := c.io.ReadInput("Customer ID (optional): ")
	if err != nil {
		return nil, err
	}
	status, err := c.io.ReadInput("Status (optional): ")
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"name": name}
	if customerID != "" {
		payload["customer_id"] = customerID
	}
	if status != "" {
		payload["status"] = status
	}
	return payload, nil
}

func (c *Cli) readRequired(prompt string) (string, error) {
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if value == "" {
		return "", fmt.Errorf("value cannot be empty")
	}
	return value, nil
}

func (c *Cli) readAmount(prompt string) (float64, error) {
	value, err := c.readRequired(prompt)
	if err != nil {
		return 0, err
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}
