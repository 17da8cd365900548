package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"alien/internal/domain"
	"alien/internal/serializer"
)

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Print statistics of a simulation or collection file",
	Long:  `Reads a .sim or .aco file and prints the numbers the editor's monitor shows.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadEntities(serializer.New(), args[0])
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), args[0], domain.Measure(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// loadEntities reads the entity graph of a simulation or collection file
func loadEntities(ser serializer.Serializer, path string) (domain.DataDescription, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case serializer.ExtSimulation:
		sim, err := ser.LoadSimulation(path)
		if err != nil {
			return domain.DataDescription{}, err
		}
		return sim.Data, nil
	case serializer.ExtCollection:
		return ser.LoadCollection(path)
	}
	return domain.DataDescription{}, fmt.Errorf("unsupported file %s: expected %s or %s",
		path, serializer.ExtSimulation, serializer.ExtCollection)
}

func printStats(w io.Writer, path string, data domain.MonitorData) {
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  clusters            %d\n", data.NumClusters)
	fmt.Fprintf(w, "  cells               %d\n", data.NumCells)
	fmt.Fprintf(w, "  particles           %d\n", data.NumParticles)
	fmt.Fprintf(w, "  tokens              %d\n", data.NumTokens)
	fmt.Fprintf(w, "  internal energy     %.2f\n", data.TotalInternalEnergy)
	fmt.Fprintf(w, "  linear kinetic      %.2f\n", data.TotalLinearKineticEnergy)
	fmt.Fprintf(w, "  rotational kinetic  %.2f\n", data.TotalRotationalKineticEnergy)
}
