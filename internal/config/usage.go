package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/limbcalc/internal/ui"
)

// setCustomUsage installs a colored usage function on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Usage can run before the theme is initialized.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()
		fmt.Fprintf(out, "\n%sLimb Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Arbitrary-precision unsigned arithmetic on limb chains, cross-checked between engines.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s -op mul -a 5 -b 3 [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-22s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEvery flag can also be set with a %s<FLAG> environment variable, e.g. %sWIDTH=4.\n\n", EnvPrefix, EnvPrefix)
	}
}
