package unity

import (
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

type workflowHeader struct {
	Name string `yaml:"name"`
}

// workflowName returns the top-level "name:" of a CI YAML file.
func (p *Project) workflowName(rel string) string {
	text, ok := p.read(rel)
	if !ok {
		return ""
	}
	var h workflowHeader
	if err := yaml.Unmarshal([]byte(text), &h); err != nil {
		return ""
	}
	return h.Name
}

var rootCIFiles = []struct {
	file string
	kind string
}{
	{".gitlab-ci.yml", "gitlab"},
	{"azure-pipelines.yml", "azure"},
	{"bitbucket-pipelines.yml", "bitbucket"},
	{".travis.yml", "travis"},
	{"Jenkinsfile", "jenkins"},
	{"unity-cloud-build.json", "unity-cloud-build"},
	{"codemagic.yaml", "codemagic"},
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// CIConfigs lists CI definitions: GitHub workflows, CircleCI and the common
// single-file providers at the project root.
func (p *Project) CIConfigs() []types.CIConfig {
	out := make([]types.CIConfig, 0)
	workflows := path.Join(".github", "workflows")
	for _, name := range fsutil.ListDir(p.Root, workflows) {
		if !isYAML(name) {
			continue
		}
		rel := path.Join(workflows, name)
		out = append(out, types.CIConfig{Path: rel, Kind: "github-actions", Name: p.workflowName(rel)})
	}
	if rel := ".circleci/config.yml"; fsutil.Exists(p.Root, rel) {
		out = append(out, types.CIConfig{Path: rel, Kind: "circleci"})
	}
	for _, f := range rootCIFiles {
		if !fsutil.Exists(p.Root, f.file) {
			continue
		}
		c := types.CIConfig{Path: f.file, Kind: f.kind}
		if isYAML(f.file) {
			c.Name = p.workflowName(f.file)
		}
		out = append(out, c)
	}
	return out
}

// Presets lists editor preset assets.
func (p *Project) Presets() []string {
	return p.listExt(".preset")
}

// GitLFSTracked returns the .gitattributes lines routed through Git LFS.
func (p *Project) GitLFSTracked() []string {
	out := make([]string, 0)
	text, ok := p.read(".gitattributes")
	if !ok {
		return out
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "filter=lfs") {
			out = append(out, line)
		}
	}
	return out
}

// PlasticConfig reports a Plastic SCM workspace and its name.
func (p *Project) PlasticConfig() types.PlasticConfig {
	out := types.PlasticConfig{PlasticDir: fsutil.IsDir(p.Root, ".plastic")}
	text, ok := p.read(".plastic", "plastic.workspace")
	if !ok {
		return out
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// the first line is the workspace name; older clients prefix it
		out.WorkspaceName = strings.TrimSpace(strings.TrimPrefix(line, "workspace"))
		break
	}
	return out
}
