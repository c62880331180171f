package unity

import (
	"context"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/assetref"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/internal/unityyaml"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

const defaultLargestAssets = 20

// fanOut runs every task concurrently and stops early when ctx is done.
// Tasks only read the project, so they never conflict.
func fanOut(ctx context.Context, tasks ...func()) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			task()
			return nil
		})
	}
	return g.Wait()
}

// ProjectStats counts scripts, prefabs, scenes and other main asset kinds.
func (p *Project) ProjectStats(ctx context.Context) (types.ProjectStats, error) {
	var s types.ProjectStats
	err := fanOut(ctx,
		func() { s.Scripts = len(p.Scripts("")) },
		func() { s.Prefabs = len(p.Prefabs("")) },
		func() { s.Scenes = len(p.AllScenes()) },
		func() { s.Materials = len(p.listExt(".mat")) },
		func() { s.AnimatorControllers = len(p.AnimatorControllers()) },
		func() { s.AnimationClips = len(p.AnimationClips()) },
		func() { s.Assemblies = len(p.Assemblies()) },
		func() { s.Packages = len(p.Packages().Dependencies) },
	)
	return s, err
}

// ReleaseReadiness rolls up the pre-release checks in one call.
func (p *Project) ReleaseReadiness(ctx context.Context) (types.ReleaseReadiness, error) {
	var r types.ReleaseReadiness
	err := fanOut(ctx,
		func() { r.Version = p.ProjectVersion() },
		func() { r.BuildSceneCount = len(p.BuildScenes()) },
		func() { r.PackageCount = len(p.Packages().Dependencies) },
		func() { r.BrokenScriptRefCount = len(p.BrokenScriptRefs()) },
		func() { r.HasAssemblyCycles = p.AssemblyCycles().HasCycles },
		func() { r.LargeAssetCount = len(p.LargeAssets(DefaultLargeAssetMB)) },
	)
	return r, err
}

// BuildSizeEstimate follows GUID references from the enabled build scenes,
// transitively, and sums the size of every asset reached. Assets loaded
// from Resources or Addressables are not counted.
func (p *Project) BuildSizeEstimate(top int) types.BuildSizeEstimate {
	if top <= 0 {
		top = defaultLargestAssets
	}
	out := types.BuildSizeEstimate{Largest: make([]types.SizedAsset, 0)}

	idx := assetref.BuildIndex(p.Root, fsutil.Assets)
	visited := make(map[string]bool)
	unresolved := make(map[string]bool)
	queue := make([]string, 0)
	for _, s := range p.BuildScenes() {
		if s.Enabled && !visited[s.Path] {
			visited[s.Path] = true
			queue = append(queue, s.Path)
			out.SceneCount++
		}
	}

	type sized struct {
		rel  string
		size int64
	}
	sizes := make([]sized, 0)
	for len(queue) > 0 {
		rel := queue[0]
		queue = queue[1:]

		size := fsutil.FileSize(p.Root, rel)
		if size < 0 {
			continue
		}
		out.TotalBytes += size
		sizes = append(sizes, sized{rel, size})

		text, ok := p.read(rel)
		if !ok {
			continue
		}
		for _, g := range unityyaml.GUIDRefs(text) {
			if strings.HasPrefix(g, unityyaml.BuiltinGUIDPrefix) {
				continue
			}
			dep, ok := idx.Path(g)
			if !ok {
				unresolved[g] = true
				continue
			}
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	out.AssetCount = len(sizes)
	out.TotalSize = humanize.IBytes(uint64(out.TotalBytes))
	out.UnresolvedGUIDs = len(unresolved)
	sort.SliceStable(sizes, func(i, j int) bool { return sizes[i].size > sizes[j].size })
	for _, s := range limit(sizes, top) {
		out.Largest = append(out.Largest, sizedAsset(s.rel, s.size))
	}
	return out
}
