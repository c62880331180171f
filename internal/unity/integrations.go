package unity

import (
	"path"
	"regexp"
	"strings"

	"github.com/rachitkumarrastogi/unity-mcp-server/internal/fsutil"
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

var (
	playFabTitleRe = regexp.MustCompile(`(?i)title_?id["'\s:=]+["']?([A-Za-z0-9]{4,})`)
	projectIDRe    = regexp.MustCompile(`(?i)project_?id["'\s:>]+(?:<string>)?["']?([A-Za-z0-9._-]+)`)
)

// packageNames returns the manifest dependency names, lower-cased.
func (p *Project) packageNames() []string {
	deps := p.Packages().Dependencies
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, strings.ToLower(d.Name))
	}
	return out
}

func anyContains(names []string, words ...string) bool {
	for _, n := range names {
		for _, w := range words {
			if strings.Contains(n, w) {
				return true
			}
		}
	}
	return false
}

// allAssets lists every non-meta file under Assets.
func (p *Project) allAssets() []string {
	return fsutil.ListFiles(p.Root, fsutil.Assets, fsutil.ListOptions{ExcludeMeta: true})
}

// pluginEntry finds an entry of Assets/Plugins whose name contains word.
func (p *Project) pluginEntry(word string) (string, bool) {
	plugins := path.Join(fsutil.Assets, "Plugins")
	for _, name := range fsutil.ListDir(p.Root, plugins) {
		if strings.Contains(strings.ToLower(name), word) && !strings.HasSuffix(name, ".meta") {
			return path.Join(plugins, name), true
		}
	}
	return "", false
}

// PlayFabConfig finds PlayFab shared settings and the title id in them.
func (p *Project) PlayFabConfig() types.PlayFabConfig {
	out := types.PlayFabConfig{ConfigPaths: make([]string, 0)}
	out.ConfigPaths = append(out.ConfigPaths, filterLower(p.listExt(".asset"), "playfab")...)
	resources := fsutil.ListFiles(p.Root, path.Join(fsutil.Assets, "Resources"), fsutil.ListOptions{Ext: ".json"})
	out.ConfigPaths = append(out.ConfigPaths, filterLower(resources, "playfab")...)
	for _, rel := range out.ConfigPaths {
		text, ok := p.read(rel)
		if !ok {
			continue
		}
		if m := playFabTitleRe.FindStringSubmatch(text); m != nil {
			out.TitleID = m[1]
			break
		}
	}
	return out
}

// FigmaRelatedAssets lists assets imported from Figma.
func (p *Project) FigmaRelatedAssets() []string {
	dir := path.Join(fsutil.Assets, "Figma")
	if fsutil.IsDir(p.Root, dir) {
		return fsutil.ListFiles(p.Root, dir, fsutil.ListOptions{ExcludeMeta: true})
	}
	return filterLower(p.allAssets(), "figma")
}

// FirebaseConfig locates google-services.json or GoogleService-Info.plist
// and extracts the project id.
func (p *Project) FirebaseConfig() types.FirebaseConfig {
	const (
		jsonFile  = "google-services.json"
		plistFile = "GoogleService-Info.plist"
	)
	var out types.FirebaseConfig
	for _, rel := range []string{path.Join(fsutil.Assets, jsonFile), path.Join(fsutil.Assets, plistFile), jsonFile, plistFile} {
		text, ok := p.read(rel)
		if !ok {
			continue
		}
		if strings.HasSuffix(rel, ".json") {
			out.GoogleServicesJSON = rel
		} else {
			out.Plist = rel
		}
		if m := projectIDRe.FindStringSubmatch(text); m != nil {
			out.ProjectID = m[1]
		}
		break
	}
	return out
}

// SteamConfig locates steam_appid.txt and the Steamworks plugin.
func (p *Project) SteamConfig() types.SteamConfig {
	var out types.SteamConfig
	if text, ok := p.read("steam_appid.txt"); ok {
		out.SteamAppIDTxt = "steam_appid.txt"
		out.AppID = strings.TrimSpace(text)
	}
	out.SteamworksPath, _ = p.pluginEntry("steam")
	return out
}

// DiscordConfig locates the Discord Game SDK plugin.
func (p *Project) DiscordConfig() types.DiscordConfig {
	var out types.DiscordConfig
	out.SDKPath, _ = p.pluginEntry("discord")
	return out
}

// FMODConfig lists FMOD bank files and the folder holding them.
func (p *Project) FMODConfig() types.FMODConfig {
	out := types.FMODConfig{BankFiles: p.listExt(".bank")}
	if len(out.BankFiles) > 0 {
		out.BanksPath = path.Dir(out.BankFiles[0])
	}
	if fsutil.Exists(p.Root, fsutil.Assets, "Plugins", "FMOD") {
		out.ProjectPath = path.Join(fsutil.Assets, "Plugins", "FMOD")
	}
	for _, rel := range filterLower(p.listExt(".asset"), "fmodstudiosettings") {
		out.ProjectPath = rel
	}
	return out
}

// WwiseConfig lists Wwise projects and the generated sound bank folder.
func (p *Project) WwiseConfig() types.WwiseConfig {
	out := types.WwiseConfig{ProjectPaths: p.listExts(".wproj", ".wwise")}
	if banks := filterLower(p.allAssets(), "soundbank", "audiobank"); len(banks) > 0 {
		out.SoundBanksPath = path.Dir(banks[0])
	}
	return out
}

// SubstanceAssets lists Substance materials.
func (p *Project) SubstanceAssets() []string {
	return p.listExts(".sbsar", ".sbs")
}

// SpeedTreeAssets lists SpeedTree models.
func (p *Project) SpeedTreeAssets() []string {
	return p.listExts(".spm", ".stm", ".st")
}

// LottieAssets lists Lottie animation JSON files.
func (p *Project) LottieAssets() []string {
	dir := path.Join(fsutil.Assets, "Lottie")
	if fsutil.IsDir(p.Root, dir) {
		return fsutil.ListFiles(p.Root, dir, fsutil.ListOptions{Ext: ".json"})
	}
	return filterLower(p.listExt(".json"), "lottie")
}

// AnalyticsOrCrashConfig names analytics and crash reporting SDKs present
// as packages or as imported assets.
func (p *Project) AnalyticsOrCrashConfig() types.ServicePresence {
	names := p.packageNames()
	out := types.ServicePresence{Services: make([]string, 0)}
	add := func(ok bool, service string) {
		if ok {
			out.Services = append(out.Services, service)
		}
	}
	add(anyContains(names, "analytics"), "Unity Analytics")
	add(anyContains(names, "sentry"), "Sentry")
	add(anyContains(names, "crashlytics"), "Crashlytics")
	add(anyContains(names, "bugsnag"), "BugSnag")
	add(anyContains(names, "backtrace"), "Backtrace")
	if len(out.Services) == 0 && len(filterLower(p.allAssets(), "sentry", "crashlytics", "bugsnag")) > 0 {
		out.Services = append(out.Services, "Crash/Analytics (asset detected)")
	}
	return out
}

// AdsConfig names advertising SDKs installed as packages.
func (p *Project) AdsConfig() types.ServicePresence {
	names := p.packageNames()
	out := types.ServicePresence{Services: make([]string, 0)}
	add := func(ok bool, service string) {
		if ok {
			out.Services = append(out.Services, service)
		}
	}
	add(anyContains(names, "advertisement", "unity-ads"), "Unity Ads")
	add(anyContains(names, "levelplay"), "Unity LevelPlay")
	add(anyContains(names, "admob", "google-mobile-ads"), "AdMob")
	add(anyContains(names, "ironsource"), "ironSource")
	add(anyContains(names, "applovin", "max-sdk"), "AppLovin MAX")
	return out
}
