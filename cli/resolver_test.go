package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolveYAML(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want config
	}{
		{"empty", "", config{}},
		{"invalid", "log-level: [", config{}},
		{"not a mapping", "- a\n- b\n", config{}},
		{
			name: "scalars",
			yaml: "log-level: debug\nlog_pretty: false\njobs: 4\nratio: 0.5\n",
			want: config{"log-level": "debug", "log_pretty": false, "jobs": "4", "ratio": "0.5"},
		},
		{
			name: "list",
			yaml: "source-path:\n  - /usr/src\n  - 'a,b'\n",
			want: config{"source-path": `/usr/src,a\,b`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolveYAML(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("resolveYAML() error = %v", err)
			}

			got, ok := res.(config)
			if !ok {
				t.Fatalf("resolveYAML() returned %T", res)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("resolveYAML() = %v, want %v", got, tt.want)
			}

			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %#v, want %#v", k, got[k], v)
				}
			}
		})
	}
}

func TestResolveYAML_Flags(t *testing.T) {
	var cli struct {
		LogLevel   string   `default:"info"`
		LogPretty  bool     `default:"true"`
		SourcePath []string `name:"source-path"`
		Jobs       int
	}

	res, err := resolveYAML(strings.NewReader(
		"log_level: debug\nlog-pretty: false\njobs: 3\nsource-path: [/usr/src, 'a,b']\n",
	))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(res))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--jobs=5"}); err != nil {
		t.Fatal(err)
	}

	if cli.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cli.LogLevel)
	}

	if cli.LogPretty {
		t.Error("LogPretty = true, want false")
	}

	if cli.Jobs != 5 {
		t.Errorf("Jobs = %d, want the flag value 5", cli.Jobs)
	}

	if want := []string{"/usr/src", "a,b"}; !slices.Equal(cli.SourcePath, want) {
		t.Errorf("SourcePath = %q, want %q", cli.SourcePath, want)
	}
}
