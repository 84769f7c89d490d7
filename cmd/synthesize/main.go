// Command synthesize drives the synthesis core end to end: it parses a
// sketch's hole declarations and a properties file, compiles them into
// a quotient model, runs the requested search strategy, and prints a
// Statistic report.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/dsynth/quotientsynth/pkg/family"
	"github.com/dsynth/quotientsynth/pkg/fsc"
	"github.com/dsynth/quotientsynth/pkg/pomdp"
	"github.com/dsynth/quotientsynth/pkg/profiler"
	"github.com/dsynth/quotientsynth/pkg/quotient"
	"github.com/dsynth/quotientsynth/pkg/sketchio"
	"github.com/dsynth/quotientsynth/pkg/spec"
	"github.com/dsynth/quotientsynth/pkg/synth"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := LoadConfig()

	sketchPath := flag.String("sketch", "", "path to a sketch file with hole <type> <name> in {opt,...}; declarations")
	modelPath := flag.String("model", "", "path to the explicit JSON model (quotient.JSONBuilder / pomdp.LoadObservationPOMDP format)")
	propsPath := flag.String("props", "", "path to a properties file")
	constantsFlag := flag.String("constants", "", "comma-separated const=value pairs substituted before hole rewriting")
	method := flag.String("method", "ar", "search strategy: ar, cegis, hybrid, 1by1, pomdp")
	pomdpInner := flag.String("pomdp-synth", "ar", "inner synthesizer the POMDP driver runs each iteration: ar or hybrid")
	status := flag.Bool("status", false, "print periodic progress lines while synthesizing")
	flag.Parse()

	if *propsPath == "" || *modelPath == "" {
 fmt.Fprintln(os.Stderr, "usage: synthesize -model=model.json -props=props.txt [-sketch=sketch.txt] [-constants=k=v,...] [-method=ar|cegis|hybrid|1by1|pomdp]")
 os.Exit(2)
	}

	propsContent, err := os.ReadFile(*propsPath)
	if err != nil {
 log.Fatalf("reading properties: %v", err)
	}
	modelContent, err := os.ReadFile(*modelPath)
	if err != nil {
 log.Fatalf("reading model: %v", err)
	}

	specification, err := sketchio.ParseProperties(string(propsContent))
	if err != nil {
 log.Fatalf("parsing properties: %v", err)
	}
	if *constantsFlag != "" {
 if err := sketchio.SubstituteFormulaConstants(specification, *constantsFlag); err != nil {
 log.Fatalf("substituting property constants: %v", err)
 }
	}

	checker := quotient.NewGraphModelChecker()

	if *method == "pomdp" {
 runPOMDP(cfg, modelContent, specification, checker, *pomdpInner, *status)
 return
	}

	space, err := loadDesignSpace(*sketchPath, *constantsFlag)
	if err != nil {
 log.Fatalf("loading sketch: %v", err)
	}

	q, err := quotient.NewJSONBuilder().Build(string(modelContent), space)
	if err != nil {
 log.Fatalf("building quotient: %v", err)
	}

	ctx := synth.Context{Quotient: q, Specification: specification, Checker: checker}
	synthesizer, err := newSynthesizer(*method, ctx)
	if err != nil {
 log.Fatalf("%v", err)
	}

	stat := profiler.NewStatistic(q, space, specification, synthesizer.MethodName())
	stat.SetStatusPeriod(cfg.StatusPeriod)
	if *status {
 stat.OnStatus = func(line string) { log.Println(line) }
	}
	stop := stat.Start()

	assignment, err := synthesizer.Synthesize(space)
	stop()
	stat.Finished(assignment)
	if err != nil {
 log.Fatalf("synthesis failed: %v", err)
	}

	fmt.Print(stat.Summary())
	if assignment != nil {
 fmt.Printf("assignment: %s\n", assignment.String())
	}
}

// loadDesignSpace rewrites a sketch's hole declarations into its design
// space. With no sketch file, every hole the model references must
// already be resolved into a fixed requirement, so an empty design
// space is used.
func loadDesignSpace(sketchPath, constantsFlag string) (family.DesignSpace, error) {
	if sketchPath == "" {
 return family.NewDesignSpace(nil), nil
	}
	raw, err := os.ReadFile(sketchPath)
	if err != nil {
 return family.DesignSpace{}, err
	}
	text := string(raw)
	if constantsFlag != "" {
 text, err = sketchio.SubstituteConstants(text, constantsFlag)
 if err != nil {
 return family.DesignSpace{}, err
 }
	}
	_, space, _ := sketchio.RewriteHoles(text)
	return space, nil
}

func newSynthesizer(method string, ctx synth.Context) (synth.Synthesizer, error) {
	switch method {
	case "ar":
 return synth.NewArCore(ctx), nil
	case "cegis":
 return synth.NewCegisCore(ctx, quotient.NewRelevantHolesConflictGenerator()), nil
	case "hybrid":
 return synth.NewHybrid(ctx, quotient.NewRelevantHolesConflictGenerator()), nil
	case "1by1":
 return synth.NewOneByOne(ctx), nil
	default:
 return nil, fmt.Errorf("unknown method %q (want ar, cegis, hybrid, 1by1, pomdp)", method)
	}
}

// runPOMDP drives the memory-refinement loop and re-simulates the
// resulting controller.
func runPOMDP(cfg *Config, modelContent []byte, specification *spec.Specification, checker quotient.ModelChecker, innerMethod string, printStatus bool) {
	p, err := pomdp.LoadObservationPOMDP(modelContent)
	if err != nil {
 log.Fatalf("loading pomdp: %v", err)
	}
	model := pomdp.NewUnfolder(p)

	newSynth := func(ctx synth.Context) synth.Synthesizer {
 switch innerMethod {
 case "hybrid":
 return synth.NewHybrid(ctx, quotient.NewRelevantHolesConflictGenerator())
 default:
 return synth.NewArCore(ctx)
 }
	}

	driver := pomdp.NewDriver(model, specification, checker, newSynth)
	driver.MaxIterations = cfg.POMDPMaxIterations
	if printStatus {
 log.Printf("running POMDP memory refinement, up to %d iterations", driver.MaxIterations)
	}

	result, err := driver.Run()
	if err != nil {
 log.Fatalf("pomdp synthesis failed: %v", err)
	}

	fmt.Printf("pomdp refinement: %d iterations, memory sizes %v\n", result.Iterations, result.MemorySize)
	if result.Best == nil {
 fmt.Println("no feasible controller found")
 return
	}

	_, _, classes, err := model.Build(result.MemorySize)
	if err != nil {
 log.Fatalf("rebuilding final unfolding: %v", err)
	}
	controller, err := fsc.FromAssignment(classes, result.MemorySize, *result.Best)
	if err != nil {
 log.Fatalf("extracting controller: %v", err)
	}
	fmt.Println(controller.String())

	sim, err := fsc.Simulate(p, controller, cfg.FSCSimTrials, cfg.FSCSimMaxSteps, rand.New(rand.NewSource(cfg.RandomSeed)))
	if err != nil {
 log.Fatalf("re-simulating controller: %v", err)
	}
	fmt.Printf("re-simulated value: %.4f (%d/%d trials reached target)\n", sim.Value, sim.Reached, sim.Trials)
}
