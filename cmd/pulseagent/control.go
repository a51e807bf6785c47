package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve",
		Short: "Approve the pending suggestion on a running serve process (debug/testing only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hitControlEndpoint("approve")
		},
	}
}

func newDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss",
		Short: "Dismiss the pending suggestion on a running serve process (debug/testing only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hitControlEndpoint("dismiss")
		},
	}
}

func hitControlEndpoint(action string) error {
	resp, err := http.Post(fmt.Sprintf("http://%s/%s", controlAddr, action), "application/json", nil)
	if err != nil {
		return fmt.Errorf("%s: no running serve process found at %s: %w", action, controlAddr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", action, resp.Status)
	}
	return nil
}
