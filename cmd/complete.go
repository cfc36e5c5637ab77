package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/investlog"
	"github.com/etnz/investlog/docs"
)

// flagPredictors completes the values of flags by name, for every command.
var flagPredictors = map[string]complete.Predictor{
	"ledger": predict.Files("*.jsonl"),
	"db":     predict.Files("*.db"),
	"type":   predict.Set(assetTypeNames()),
	"tx":     predict.Set{string(investlog.AnyType), string(investlog.Buy), string(investlog.Sell)},
	"preset": predict.Set(presetNames()),
	"period": predict.Set{string(investlog.PresetAll), string(investlog.Preset7Days), string(investlog.Preset30Days), string(investlog.Preset90Days)},
	"sort":   predict.Set{string(investlog.SortByDate), string(investlog.SortByAmount), string(investlog.SortByProfit), string(investlog.SortByName)},
	"order":  predict.Set{string(investlog.Ascending), string(investlog.Descending)},
}

// Completion describes the ivl command line for shell completion. Flags are
// read from the commands so that completion follows them.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	for _, e := range Commands() {
		f := flag.NewFlagSet(e.Name(), flag.ContinueOnError)
		e.SetFlags(f)
		root.Sub[e.Name()] = &complete.Command{Flags: predictFlags(f)}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, docs.All))
	}
	return root
}

func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
