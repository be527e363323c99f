package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
	"gopkg.in/yaml.v3"
)

var seedFile string

type seedCar struct {
	ID          string  `yaml:"id"`
	Brand       string  `yaml:"brand"`
	Model       string  `yaml:"model"`
	Category    string  `yaml:"category"`
	PricePerDay float64 `yaml:"price_per_day"`
	Seats       int     `yaml:"seats"`
	FuelType    string  `yaml:"fuel_type"`
	Location    struct {
		City    string `yaml:"city"`
		State   string `yaml:"state"`
		Address string `yaml:"address"`
	} `yaml:"location"`
	Active *bool `yaml:"active"`
}

type seedFileContent struct {
	Cars []seedCar `yaml:"cars"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert car listings from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()

		cars, err := parseSeed(f)
		if err != nil {
			return err
		}

		dbCfg, err := loadStoreConfig()
		if err != nil {
			return err
		}
		db, err := storex.Open(*dbCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := storex.NewBunStore(db).InsertCars(cmd.Context(), cars); err != nil {
			return err
		}
		log.Info().Int("cars", len(cars)).Str("file", seedFile).Msg("seeded car listings")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "cars.yaml", "YAML file with a top-level cars list")
	rootCmd.AddCommand(seedCmd)
}

func parseSeed(r io.Reader) ([]storex.CarListing, error) {
	var content seedFileContent
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&content); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	cars := make([]storex.CarListing, 0, len(content.Cars))
	for i, c := range content.Cars {
		if strings.TrimSpace(c.Brand) == "" || strings.TrimSpace(c.Model) == "" {
			return nil, fmt.Errorf("cars[%d]: brand and model are required", i)
		}
		if c.PricePerDay < 0 {
			return nil, fmt.Errorf("cars[%d]: price_per_day must not be negative", i)
		}
		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = uuid.NewString()
		}
		active := true
		if c.Active != nil {
			active = *c.Active
		}
		cars = append(cars, storex.CarListing{
			ID:          id,
			Brand:       c.Brand,
			Model:       c.Model,
			Category:    c.Category,
			PricePerDay: c.PricePerDay,
			Seats:       c.Seats,
			FuelType:    c.FuelType,
			Location: storex.Location{
				City:    c.Location.City,
				State:   c.Location.State,
				Address: c.Location.Address,
			},
			IsActive: active,
		})
	}
	return cars, nil
}
