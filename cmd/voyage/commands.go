package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"voyage/internal/export"
	"voyage/internal/modules/itinerary"
	"voyage/internal/planner"
)

func newPlanCmd(opts *options) *cobra.Command {
	var req itinerary.TripRequest
	var budget string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a new itinerary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, closeStore, err := opts.form(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			req.Budget = itinerary.Budget(budget)
			cmd.PrintErrln("Generating itinerary, this can take a minute...")
			it, err := f.Submit(cmd.Context(), req)
			return report(cmd, it, err)
		},
	}
	cmd.Flags().StringVar(&req.OriginCity, "from", "", "origin city")
	cmd.Flags().StringVar(&req.DestinationCity, "to", "", "destination city")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Interests, "interests", "", "free-text interests")
	cmd.Flags().StringVar(&budget, "budget", string(itinerary.BudgetModerate), "budget, moderate or luxury")
	return cmd
}

func newRetryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Resend the last request unchanged",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, closeStore, err := opts.form(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			it, err := f.Retry(cmd.Context())
			return report(cmd, it, err)
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved itinerary and planner state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, closeStore, err := opts.form(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			snap := f.Snapshot()
			cmd.Printf("State: %s\n", snap.State)
			if snap.Error != "" {
				cmd.Printf("Last error: %s\n", snap.Error)
			}
			if snap.Itinerary == nil {
				cmd.Println("No saved itinerary.")
				return nil
			}
			printItinerary(cmd.OutOrStdout(), snap.Itinerary)
			return nil
		},
	}
}

func newClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved request and itinerary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, closeStore, err := opts.form(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := f.Clear(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("Cleared.")
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var format, outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved itinerary as an ICS calendar or PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, closeStore, err := opts.form(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			it := f.Snapshot().Itinerary
			if it == nil {
				return export.ErrNoItinerary
			}
			path := filepath.Join(outDir, export.Filename(it.TripName, format))
			if err := writeExport(path, format, it); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "ics", "ics or pdf")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

func writeExport(path, format string, it *itinerary.Itinerary) (err error) {
	if format != "ics" && format != "pdf" {
		return fmt.Errorf("unknown format %q, use ics or pdf", format)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if format == "ics" {
		return export.WriteCalendar(out, it)
	}
	_, err = export.WritePDF(out, it)
	return err
}

func newFeedCmd(opts *options) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show recent traveller posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := opts.client().FetchPosts(cmd.Context(), tag)
			if planner.IsCanceled(err) {
				return nil
			}
			if err != nil {
				return err
			}
			for _, p := range posts {
				cmd.Printf("@%s (%s)\n  %s\n", p.AuthorHandle, p.PublishedAt.Local().Format("Jan 2 15:04"), p.Content)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "#travel", "hashtag to follow")
	return cmd
}

func newBuyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <product-id>",
		Short: "Start a checkout for a travel product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := opts.client().Checkout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Complete your purchase at %s\n", url)
			return nil
		},
	}
}

// report prints a generation outcome. Cancellation is silent.
func report(cmd *cobra.Command, it *itinerary.Itinerary, err error) error {
	var verr *planner.ValidationError
	switch {
	case err == nil:
		printItinerary(cmd.OutOrStdout(), it)
		return nil
	case planner.IsCanceled(err):
		cmd.PrintErrln("Cancelled.")
		return err
	case errors.As(err, &verr):
		return verr
	default:
		return fmt.Errorf("%w (run `voyage retry` to try again)", err)
	}
}

func printItinerary(w io.Writer, it *itinerary.Itinerary) {
	fmt.Fprintf(w, "%s\n%s to %s, %s to %s\n", it.TripName, it.Origin, it.Destination, it.StartDate, it.EndDate)
	for _, d := range it.Days {
		fmt.Fprintf(w, "\n%s: %s\n", d.Day, d.Summary)
		for _, f := range d.Flights {
			fmt.Fprintf(w, "  Flight: %s\n", f)
		}
		for _, h := range d.Hotels {
			fmt.Fprintf(w, "  Hotel: %s\n", h)
		}
		for _, a := range d.Activities {
			fmt.Fprintf(w, "  %s: %s\n", a.Time, a.Description)
		}
	}
}
