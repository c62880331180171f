package unity

import (
	"path"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/assetref"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// Materials lists .mat files with the GUID of the shader each one uses.
func (p *Project) Materials(folder string) []types.Material {
	out := make([]types.Material, 0)
	for _, rel := range underFolder(p.listExt(".mat"), folder) {
		m := types.Material{Path: rel}
		if text, ok := p.read(rel); ok {
			m.Shader, _ = unityyaml.ShaderGUID(text)
		}
		out = append(out, m)
	}
	return out
}

// MaterialsUsingShader lists materials whose shader matches shader, given
// as a GUID or as the path of a .shader or .shadergraph asset.
func (p *Project) MaterialsUsingShader(shader string) []string {
	out := make([]string, 0)
	guid, _, ok := assetref.Resolve(p.Root, shader)
	if !ok {
		return out
	}
	for _, m := range p.Materials("") {
		if m.Shader == guid {
			out = append(out, m.Path)
		}
	}
	return out
}

// Shaders lists .shader files in Assets and in embedded packages.
func (p *Project) Shaders() []string {
	out := p.listExt(".shader")
	return append(out, fsutil.ListFiles(p.Root, fsutil.Packages, fsutil.ListOptions{Ext: ".shader"})...)
}

// ShaderGraphs lists Shader Graph and sub-graph files.
func (p *Project) ShaderGraphs() []string {
	return p.listExts(".shadergraph", ".shadersubgraph")
}

// VFXGraphs lists Visual Effect Graph assets.
func (p *Project) VFXGraphs() []string {
	return p.listExts(".vfx", ".vfxoperator", ".vfxblock")
}

// RenderPipelines lists pipeline assets and post-processing volume profiles.
func (p *Project) RenderPipelines() types.RenderPipelines {
	out := types.RenderPipelines{Pipelines: make([]string, 0), VolumeProfiles: make([]string, 0)}
	for _, rel := range p.listExt(".asset") {
		name := strings.ToLower(path.Base(rel))
		switch {
		case strings.Contains(name, "pipeline") || strings.Contains(name, "renderer") ||
			strings.Contains(name, "urp") || strings.Contains(name, "hdrp"):
			out.Pipelines = append(out.Pipelines, rel)
		case strings.Contains(name, "volume") || strings.Contains(name, "profile"):
			out.VolumeProfiles = append(out.VolumeProfiles, rel)
		}
	}
	out.Pipelines = limit(out.Pipelines, 50)
	out.VolumeProfiles = limit(out.VolumeProfiles, 30)
	return out
}
