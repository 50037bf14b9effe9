package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/expense-waterfall/internal"
	"github.com/rs/zerolog"
)

type Params struct {
	File           string `descr:"Path to the expenses file (optionally prefixed with format, e.g. xlsx:costs.xlsx)" positional:"true" optional:"true"`
	Accounts       string `descr:"Path to accounts.json (default: accounts.json next to the expenses file)" optional:"true"`
	Config         string `descr:"Path to config file (default: ~/.expense-waterfall/config.yaml)" optional:"true"`
	View           string `descr:"What to show" alts:"table,items,categories,all" strict:"true" default:"all"`
	Period         string `descr:"Normalization period of the charts (default from config, else months)" alts:"months,years" optional:"true"`
	Output         string `descr:"Output format" alts:"text,json" strict:"true" default:"text"`
	Xlsx           string `descr:"Also write the report to this Excel workbook" optional:"true"`
	ItemAnchor     string `descr:"Expense after which the TOTAL bar is placed (default from config, else Rent)" optional:"true"`
	CategoryAnchor string `descr:"Category after which the TOTAL bar is placed (default from config, else Housing)" optional:"true"`
	Width          int    `descr:"Maximum bar width in characters" default:"50"`
	InitConfig     bool   `descr:"Write a config template to the config path and exit" optional:"true"`
	Verbose        bool   `descr:"Enable debug logging" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("expense-waterfall").
		WithShort("Normalize recurring expenses and show them as waterfall charts").
		WithLong("Converts recurring expenses to a common currency (EUR) and period, then lays them out as waterfall charts per expense and per category, with a TOTAL bar placed after a configurable anchor.").
		WithRunFunc(func(params *Params) {
			log := internal.NewLogger(os.Stderr, params.Verbose)
			if err := run(params, log); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, log zerolog.Logger) error {
	configPath := params.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}

	if params.InitConfig {
		if err := internal.GenerateConfigTemplate().Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote config template to %s\n", configPath)
		return nil
	}

	if params.File == "" {
		return errors.New("missing expenses file argument")
	}

	cfg, err := loadConfig(configPath, params.Config != "")
	if err != nil {
		return err
	}
	applyOverrides(cfg, params)

	period, err := cfg.PeriodUnit()
	if err != nil {
		return fmt.Errorf("invalid period: %w", err)
	}

	expenses, err := internal.LoadExpenses(params.File, log)
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}

	_, expensesPath := internal.ParseFileArg(params.File)
	accountsPath := params.Accounts
	if accountsPath == "" {
		accountsPath = internal.DefaultAccountsPath(expensesPath)
	}
	accounts, err := internal.LoadAccountOrder(accountsPath)
	if err != nil {
		return err
	}
	log.Debug().Str("path", accountsPath).Int("accounts", accounts.Len()).Msg("loaded account order")

	report := internal.BuildReport(expenses, internal.ReportOptions{
		Period:         period,
		ItemAnchor:     cfg.Anchors.Item,
		CategoryAnchor: cfg.Anchors.Category,
		Palette:        cfg.PaletteColors(),
		Accounts:       accounts,
		Config:         cfg,
	}, log)

	if params.Xlsx != "" {
		if err := internal.ExportXLSX(params.Xlsx, report); err != nil {
			return fmt.Errorf("exporting workbook: %w", err)
		}
		log.Info().Str("path", params.Xlsx).Msg("wrote workbook")
	}

	if params.Output == "json" {
		return internal.PrintReportJSON(os.Stdout, report)
	}

	internal.PrintReport(os.Stdout, report, internal.OutputOptions{
		View:     params.View,
		Currency: internal.GetCurrency(cfg.DisplayCurrency),
		Width:    params.Width,
	})
	return nil
}

// loadConfig reads the config file. A missing default config is not an error;
// a missing explicitly given one is.
func loadConfig(path string, explicit bool) (*internal.Config, error) {
	if path == "" {
		return internal.NewDefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return internal.NewDefaultConfig(), nil
	}
	return internal.LoadConfig(path)
}

func applyOverrides(cfg *internal.Config, params *Params) {
	if params.Period != "" {
		cfg.Period = params.Period
	}
	if params.ItemAnchor != "" {
		cfg.Anchors.Item = params.ItemAnchor
	}
	if params.CategoryAnchor != "" {
		cfg.Anchors.Category = params.CategoryAnchor
	}
}
