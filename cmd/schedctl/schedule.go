package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/venueops/conference-scheduler-go/pkg/models"
	"github.com/venueops/conference-scheduler-go/pkg/parse"
	"github.com/venueops/conference-scheduler-go/pkg/scheduler"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run one scheduling pass and write the schedule CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd)
		},
	}

	cmd.Flags().String("sessions", "sessions.csv", "sessions CSV file")
	cmd.Flags().String("rooms", "rooms.csv", "rooms CSV file")
	cmd.Flags().String("speakers", "", "speakers CSV file (optional)")
	cmd.Flags().String("days", "days.csv", "days CSV file")
	cmd.Flags().String("times", "times.csv", "slot times CSV file")
	cmd.Flags().String("out", "schedule.csv", "output CSV file")

	for _, flag := range []string{"sessions", "rooms", "speakers", "days", "times", "out"} {
		_ = viper.BindPFlag(flag, cmd.Flags().Lookup(flag))
	}

	return cmd
}

func runSchedule(cmd *cobra.Command) error {
	sessions, err := readCSV(viper.GetString("sessions"), parse.Sessions)
	if err != nil {
		return err
	}
	rooms, err := readCSV(viper.GetString("rooms"), parse.Rooms)
	if err != nil {
		return err
	}
	days, err := readCSV(viper.GetString("days"), parse.Days)
	if err != nil {
		return err
	}

	var speakers []models.Speaker
	if path := viper.GetString("speakers"); path != "" {
		speakers, err = readCSV(path, parse.Speakers)
		if err != nil {
			return err
		}
	}

	timesFile, err := os.Open(viper.GetString("times"))
	if err != nil {
		return fmt.Errorf("opening times file: %w", err)
	}
	starts, ends, err := parse.Times(timesFile)
	timesFile.Close()
	if err != nil {
		return err
	}

	sessPtrs := make([]*models.Session, len(sessions))
	for i := range sessions {
		sessPtrs[i] = &sessions[i]
	}
	roomPtrs := make([]*models.Room, len(rooms))
	for i := range rooms {
		roomPtrs[i] = &rooms[i]
	}
	speakerPtrs := make([]*models.Speaker, len(speakers))
	for i := range speakers {
		speakerPtrs[i] = &speakers[i]
	}

	sched, err := scheduler.NewSchedule(starts, ends, days, sessPtrs, roomPtrs, speakerPtrs)
	if err != nil {
		return err
	}
	if err := sched.Init(); err != nil {
		return err
	}

	placed, unplaced, err := sched.CreateSchedule(sessPtrs, roomPtrs, nil, nil)
	if err != nil {
		return err
	}

	outPath := viper.GetString("out")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := parse.WriteSchedule(out, placed); err != nil {
		return err
	}

	cmd.Printf("Scheduled %d of %d sessions into %s\n", len(placed), len(sessions), outPath)
	if len(unplaced) > 0 {
		cmd.Println("Could not schedule sessions:")
		for _, sess := range unplaced {
			cmd.Printf("  %d %s\n", sess.ID, sess.Title)
		}
	}
	return nil
}

// readCSV opens path and feeds it through one of the parse readers
func readCSV[T any](path string, reader func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return reader(f)
}
