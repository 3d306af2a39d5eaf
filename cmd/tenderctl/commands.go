package main

import (
	"context"
	"flag"
	"os"

	dashmappers "tenderai/internal/dashboard/mappers"
	dashmodels "tenderai/internal/dashboard/models"
	dashboard "tenderai/internal/dashboard/service"
	tendermappers "tenderai/internal/tender/mappers"
	tendermodels "tenderai/internal/tender/models"
	tender "tenderai/internal/tender/service"
	id "tenderai/pkg/domain"
	dErrors "tenderai/pkg/domain-errors"
	pstrings "tenderai/pkg/platform/strings"
)

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "metrics":
		return a.runMetrics(ctx, args)
	case "activity":
		return a.runActivity(ctx, args)
	case "team":
		return a.runTeam(ctx, args)
	case "pipeline":
		return a.runPipeline(ctx, args)
	case "stats":
		return a.runStats(ctx, args)
	case "tender":
		return a.runTender(ctx, args)
	case "charts":
		return a.runCharts(ctx, args)
	case "export":
		return a.runExport(ctx, args)
	case "token":
		return a.runToken(ctx, args)
	}
	return dErrors.Newf(dErrors.CodeInvalidInput, "unknown command %q", name)
}

func (a *app) dashboard() *dashboard.Service {
	return dashboard.New(a.client, dashboard.WithLogger(a.log), dashboard.WithMetrics(a.metrics))
}

func (a *app) tenders() *tender.Service {
	return tender.New(a.client, tender.WithLogger(a.log), tender.WithMetrics(a.metrics))
}

func parseFlags(name string, args []string, define func(fs *flag.FlagSet)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if define != nil {
		define(fs)
	}
	if err := fs.Parse(args); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, name)
	}
	return nil
}

func (a *app) runMetrics(ctx context.Context, args []string) error {
	if err := parseFlags("metrics", args, nil); err != nil {
		return err
	}
	summary, err := a.dashboard().GetDashboardMetrics(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(summary)
}

func (a *app) runActivity(ctx context.Context, args []string) error {
	var limit, offset int
	var skipInvalid bool
	err := parseFlags("activity", args, func(fs *flag.FlagSet) {
		fs.IntVar(&limit, "limit", 0, "Number of items (1-100, default 10)")
		fs.IntVar(&offset, "offset", 0, "Items to skip")
		fs.BoolVar(&skipInvalid, "skip-invalid", false, "Drop malformed rows instead of failing")
	})
	if err != nil {
		return err
	}

	var onRowError dashmappers.ActivityRowErrorHandler
	if skipInvalid {
		onRowError = func(error, dashmodels.ActivityItemDTO) {}
	}
	feed, err := a.dashboard().GetActivityFeed(ctx, limit, offset, onRowError)
	if err != nil {
		return err
	}
	return a.printJSON(feed)
}

func (a *app) runTeam(ctx context.Context, args []string) error {
	var skipInvalid bool
	err := parseFlags("team", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&skipInvalid, "skip-invalid", false, "Drop malformed rows instead of failing")
	})
	if err != nil {
		return err
	}

	var onRowError dashmappers.TeamRowErrorHandler
	if skipInvalid {
		onRowError = func(error, dashmodels.TeamMemberDTO) {}
	}
	members, err := a.dashboard().GetTeamPerformance(ctx, onRowError)
	if err != nil {
		return err
	}
	return a.printJSON(members)
}

func (a *app) runPipeline(ctx context.Context, args []string) error {
	var query tendermodels.PipelineQuery
	var status, priority, sortBy, sortOrder string
	var skipInvalid bool
	err := parseFlags("pipeline", args, func(fs *flag.FlagSet) {
		fs.IntVar(&query.Page, "page", 1, "Page number")
		fs.IntVar(&query.PageSize, "page-size", 0, "Page size (max 100)")
		fs.StringVar(&status, "status", "", "Comma-separated status filter")
		fs.StringVar(&priority, "priority", "", "Comma-separated priority filter")
		fs.StringVar(&query.Search, "search", "", "Search term")
		fs.StringVar(&sortBy, "sort-by", "", "Sort field")
		fs.StringVar(&sortOrder, "sort-order", "", "asc or desc")
		fs.BoolVar(&skipInvalid, "skip-invalid", false, "Drop malformed rows instead of failing")
	})
	if err != nil {
		return err
	}
	query.Status = pstrings.SplitList[tendermodels.TenderStatus](status)
	query.Priority = pstrings.SplitList[tendermodels.Priority](priority)
	query.SortBy = tendermodels.SortField(sortBy)
	query.SortOrder = tendermodels.SortOrder(sortOrder)

	var onRowError tendermappers.RowErrorHandler
	if skipInvalid {
		onRowError = func(error, tendermodels.TenderDTO) {}
	}
	list, err := a.tenders().GetPipelineData(ctx, query, onRowError)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func (a *app) runStats(ctx context.Context, args []string) error {
	if err := parseFlags("stats", args, nil); err != nil {
		return err
	}
	stats, err := a.tenders().GetPipelineStats(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(stats)
}

func (a *app) runTender(ctx context.Context, args []string) error {
	var raw string
	err := parseFlags("tender", args, func(fs *flag.FlagSet) {
		fs.StringVar(&raw, "id", "", "Tender ID")
	})
	if err != nil {
		return err
	}
	tenderID, err := id.ParseTenderID(raw)
	if err != nil {
		return err
	}
	t, err := a.tenders().GetTenderDetails(ctx, tenderID)
	if err != nil {
		return err
	}
	return a.printJSON(t)
}

func (a *app) runCharts(ctx context.Context, args []string) error {
	var chartType, period string
	err := parseFlags("charts", args, func(fs *flag.FlagSet) {
		fs.StringVar(&chartType, "type", string(dashmodels.ChartTenderFlow), "Chart type")
		fs.StringVar(&period, "period", string(dashmodels.DefaultChartPeriod), "Chart period")
	})
	if err != nil {
		return err
	}
	data, err := a.dashboard().GetDashboardCharts(ctx, dashmodels.ChartType(chartType), dashmodels.ChartPeriod(period))
	if err != nil {
		return err
	}
	return a.printJSON(data)
}

type exportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Bytes       int    `json:"bytes"`
}

func (a *app) runExport(ctx context.Context, args []string) error {
	var format, out string
	err := parseFlags("export", args, func(fs *flag.FlagSet) {
		fs.StringVar(&format, "format", string(dashmodels.DefaultExportFormat), "csv, xlsx or pdf")
		fs.StringVar(&out, "out", "", "Output path (defaults to the server-provided filename)")
	})
	if err != nil {
		return err
	}
	export, err := a.dashboard().ExportDashboardData(ctx, dashmodels.ExportFormat(format))
	if err != nil {
		return err
	}
	if out == "" {
		out = export.Filename
	}
	if err := os.WriteFile(out, export.Data, 0o644); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "write export")
	}
	return a.printJSON(exportResult{Filename: out, ContentType: export.ContentType, Bytes: len(export.Data)})
}

func (a *app) runToken(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "token requires set or clear")
	}
	switch args[0] {
	case "set":
		var access, refresh string
		err := parseFlags("token set", args[1:], func(fs *flag.FlagSet) {
			fs.StringVar(&access, "access", "", "Access token")
			fs.StringVar(&refresh, "refresh", "", "Refresh token")
		})
		if err != nil {
			return err
		}
		if access == "" && refresh == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "token set requires -access or -refresh")
		}
		if access != "" {
			if err := a.tokens.SetToken(ctx, access); err != nil {
				return err
			}
		}
		if refresh != "" {
			if err := a.tokens.SetRefreshToken(ctx, refresh); err != nil {
				return err
			}
		}
		a.log.InfoContext(ctx, "credentials stored")
		return nil
	case "clear":
		if err := a.tokens.Clear(ctx); err != nil {
			return err
		}
		a.log.InfoContext(ctx, "credentials cleared")
		return nil
	}
	return dErrors.Newf(dErrors.CodeInvalidInput, "unknown token command %q", args[0])
}
