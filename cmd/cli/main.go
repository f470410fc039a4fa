package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/fxwarehouse/internal/adapter/dealfile"
	"github.com/iho/fxwarehouse/internal/adapter/http/dto"
	"github.com/iho/fxwarehouse/internal/adapter/http/middleware"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "fxwarehouse-cli",
		Short:        "FX Warehouse CLI tool",
		Long:         `A command line interface for importing and browsing FX deals.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FX Warehouse API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")

	dealsCmd := &cobra.Command{
		Use:   "deals",
		Short: "Deal operations",
	}
	dealsCmd.AddCommand(importCmd(), listCmd(), getCmd())
	rootCmd.AddCommand(dealsCmd)

	return rootCmd
}

func importCmd() *cobra.Command {
	var file, format, mappingPath, idempotencyKey string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a batch of deals from a JSON, CSV or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(file, format)
			if err != nil {
				return err
			}

			mapping := dealfile.DefaultMapping()
			if mappingPath != "" {
				if mapping, err = dealfile.LoadMapping(mappingPath); err != nil {
					return err
				}
			}

			reqs, err := dealfile.ReadFile(file, f, mapping)
			if err != nil {
				return err
			}

			body, err := json.Marshal(reqs)
			if err != nil {
				return fmt.Errorf("encode batch: %w", err)
			}

			headers := http.Header{"Content-Type": {"application/json"}}
			if idempotencyKey != "" {
				headers.Set(middleware.IdempotencyKeyHeader, idempotencyKey)
			}

			resp, err := doRequest(cmd.Context(), http.MethodPost, "/api/v1/deals/import", body, headers)
			if err != nil {
				return err
			}

			if resp.status != http.StatusOK && resp.status != http.StatusBadRequest {
				return resp.err()
			}

			var summary dto.ImportSummaryResponse
			if err := json.Unmarshal(resp.body, &summary); err != nil || (resp.status == http.StatusBadRequest && summary.Errors == nil) {
				return resp.err()
			}

			printSummary(cmd.OutOrStdout(), &summary, resp.header.Get(middleware.IdempotencyReplayHeader) == "true")
			if resp.status == http.StatusBadRequest {
				return errors.New("batch rejected: fix the listed records and retry")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the deal file")
	cmd.Flags().StringVar(&format, "format", "", "File format: json, csv or xlsx (default: from extension)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "YAML file mapping deal fields to column headers")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func listCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))

			resp, err := doRequest(cmd.Context(), http.MethodGet, "/api/v1/deals?"+q.Encode(), nil, nil)
			if err != nil {
				return err
			}
			if resp.status != http.StatusOK {
				return resp.err()
			}

			var page dto.DealListResponse
			if err := json.Unmarshal(resp.body, &page); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printDeals(cmd.OutOrStdout(), page.Deals)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of deals")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of deals to skip")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <dealID>",
		Short: "Show one deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := doRequest(cmd.Context(), http.MethodGet, "/api/v1/deals/"+url.PathEscape(args[0]), nil, nil)
			if err != nil {
				return err
			}
			if resp.status != http.StatusOK {
				return resp.err()
			}

			var deal dto.DealResponse
			if err := json.Unmarshal(resp.body, &deal); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			return printJSON(cmd.OutOrStdout(), deal)
		},
	}
}

func resolveFormat(file, format string) (dealfile.Format, error) {
	if format != "" {
		return dealfile.ParseFormat(format)
	}
	return dealfile.DetectFormat(file)
}

type apiResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r *apiResponse) err() error {
	var e dto.ErrorResponse
	if json.Unmarshal(r.body, &e) == nil && e.Error != "" {
		if e.Message != "" {
			return fmt.Errorf("request failed (status %d): %s: %s", r.status, e.Error, e.Message)
		}
		return fmt.Errorf("request failed (status %d): %s", r.status, e.Error)
	}
	return fmt.Errorf("request failed (status %d): %s", r.status, truncate(string(r.body), 200))
}

func doRequest(ctx context.Context, method, path string, body []byte, headers http.Header) (*apiResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &apiResponse{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func printSummary(w io.Writer, s *dto.ImportSummaryResponse, replayed bool) {
	if s.BatchID != "" {
		fmt.Fprintf(w, "Batch %s", s.BatchID)
	} else {
		fmt.Fprint(w, "Batch rejected")
	}
	if replayed {
		fmt.Fprint(w, " (replayed)")
	}
	fmt.Fprintf(w, ": imported %d, skipped %d\n", s.Imported, s.Skipped)

	if len(s.Errors) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEAL ID\tREASON\tFIELD")
	for _, e := range s.Errors {
		id := e.DealUniqueID
		if id == "" && e.Index != nil {
			id = fmt.Sprintf("#%d", *e.Index)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", truncate(id, 32), e.Reason, e.Field)
	}
	_ = tw.Flush()
}

func printDeals(w io.Writer, deals []*dto.DealResponse) {
	if len(deals) == 0 {
		fmt.Fprintln(w, "No deals found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDEAL ID\tFROM\tTO\tTIMESTAMP\tAMOUNT")
	for _, d := range deals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, truncate(d.DealUniqueID, 32), d.FromCurrency, d.ToCurrency,
			d.DealTimestamp.UTC().Format(time.RFC3339), d.DealAmount.String())
	}
	_ = tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
