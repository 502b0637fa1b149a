package cli

import (
	"bytes"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/ui"
)

// Output assertions compare plain text, so every test runs without colors.
func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	os.Exit(m.Run())
}

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{Timeout: time.Minute, Width: 8, Capacity: 104, MaxLimbs: 3}
	req := evaluator.Request{Op: evaluator.OpMul, A: big.NewInt(5), B: big.NewInt(3)}

	PrintExecutionConfig(cfg, req, &buf)

	for _, want := range []string{"mul(5, 3)", "1m0s", "width=8", "capacity=104", "3 limbs"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := evaluator.NewDefaultFactory(evaluator.Options{Width: 64, CapacityBits: 1024})

	t.Run("single engine", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		evs := orchestration.GetEvaluatorsToRun("limb4", factory)
		PrintExecutionMode(evs, &buf)
		if !strings.Contains(buf.String(), "Single evaluation with the limb4 (W=4) engine") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("comparison", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		evs := orchestration.GetEvaluatorsToRun(orchestration.EngineAll, factory)
		PrintExecutionMode(evs, &buf)
		if !strings.Contains(buf.String(), "Parallel comparison of") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}
