package toolchain

import (
	"strings"

	"github.com/danieljhkim/vcenv/internal/regstore"
)

var (
	dotNetKey     = regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\.NETFramework`)
	windowsSDKKey = regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\Microsoft SDKs\Windows`)
	servicing80   = regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\DevDiv\VS\Servicing\8.0`)
)

func parts(templates ...string) []Part {
	out := make([]Part, 0, len(templates))
	for _, t := range templates {
		out = append(out, Part{Template: t})
	}
	return out
}

func literal(name, value string) VarSpec {
	return VarSpec{Name: name, Parts: parts(value)}
}

// Layout follows VCVARS32.BAT of Visual C++ 6.0.
var vc60 = &Profile{
	Version: "60",
	Aliases: []string{"6", "6.0"},
	Product: "Visual C++ 6.0",
	Editions: []Edition{
		{Name: "Visual C++ 6.0", Variant: "standard", Key: regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\VisualStudio\6.0`)},
	},
	Root: RoleProduct,
	Fragments: []FragmentSpec{
		{Role: RoleProduct, Source: Source{Key: `Setup\Microsoft Visual C++`, Value: "ProductDir"}},
		{Role: RoleStudio, Source: Source{Key: `Setup\Microsoft Visual Studio`, Value: "ProductDir"}},
		{Role: RoleCommon, Source: Source{Key: `Setup`, Value: "VsCommonDir"}},
	},
	Variables: []VarSpec{
		literal("MSDevDir", `{common}\msdev98`),
		literal("MSVCDir", `{product}`),
		{Name: "PATH", Append: true, Parts: parts(
			`{common}\msdev98\bin`,
			`{product}\bin`,
			`{common}\tools\winnt`,
			`{common}\tools`,
		)},
		{Name: "INCLUDE", Append: true, Parts: parts(
			`{product}\atl\include`,
			`{product}\include`,
			`{product}\mfc\include`,
		)},
		{Name: "LIB", Append: true, Parts: parts(
			`{product}\lib`,
			`{product}\mfc\lib`,
		)},
		literal("VCINSTALLDIR", `{studio}`),
		literal("VC_VERS", "60"),
	},
	Update: UpdateSpec{
		Source:  Source{Key: `ServicePacks`, Value: "latest"},
		Minimum: 6,
	},
	Marker: RoleStudio,
}

// Layout follows vsvars32.bat of Visual Studio .NET 2003.
var vc71 = &Profile{
	Version: "71",
	Aliases: []string{"7.1"},
	Product: "Visual C++ 7.1",
	Editions: []Edition{
		{Name: "Visual C++ 7.1", Variant: "standard", Key: regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\VisualStudio\7.1`)},
	},
	Root: RoleProduct,
	Fragments: []FragmentSpec{
		{Role: RoleProduct, Source: Source{Key: `Setup\VC`, Value: "ProductDir"}},
		{Role: RoleInstall, Source: Source{Value: "InstallDir"}},
		{Role: RoleStudio, Source: Source{Key: `Setup\VS`, Value: "ProductDir"}},
		{Role: RoleCommon, Source: Source{Key: `Setup\VS`, Value: "VS7CommonDir"}},
		{Role: RoleIDE, Source: Source{Key: `Setup\VS`, Value: "EnvironmentDirectory"}},
		{Role: RoleCLRVersion, Source: Source{Value: "CLR Version"}},
		{Role: RoleCLRRoot, Source: Source{Base: dotNetKey, Value: "InstallRoot"}},
		{Role: RoleCLRSDK, Source: Source{Base: dotNetKey, Value: "sdkInstallRootv1.1"}},
	},
	Variables: []VarSpec{
		literal("VSINSTALLDIR", `{install}`),
		literal("VCINSTALLDIR", `{studio}`),
		literal("FrameworkDir", `{clr_root}`),
		literal("FrameworkVersion", `{clr_version}`),
		literal("FrameworkSDKDir", `{clr_sdk}`),
		literal("DevEnvDir", `{ide}`),
		literal("MSVCDir", `{product}`),
		{Name: "PATH", Append: true, Parts: parts(
			`{ide}`,
			`{product}\bin`,
			`{common}\tools`,
			`{common}\tools\bin\prerelease`,
			`{common}\tools\bin`,
			`{clr_sdk}\bin`,
			`{clr_root}\{clr_version}`,
		)},
		{Name: "INCLUDE", Append: true, Parts: parts(
			`{product}\atlmfc\include`,
			`{product}\include`,
			`{product}\platformSDK\include\prerelease`,
			`{product}\platformSDK\include`,
			`{clr_sdk}\include`,
		)},
		{Name: "LIB", Append: true, Parts: parts(
			`{product}\atlmfc\lib`,
			`{product}\lib`,
			`{product}\platformSDK\lib\prerelease`,
			`{product}\platformSDK\lib`,
			`{clr_sdk}\lib`,
		)},
		literal("VC_VERS", "71"),
	},
	Update: UpdateSpec{
		Source:  Source{Key: `Setup\Servicing`, Value: "CurrentSPLevel"},
		Minimum: 1,
	},
	Marker: RoleStudio,
}

// Layout follows vsvars32.bat of Visual Studio 2005 and, for the SDK
// extension, SetEnv.Cmd of the Windows SDK 6.0. Express does not record
// the common and IDE directories; they are derived from the VS directory.
var vc80 = &Profile{
	Version: "80",
	Aliases: []string{"8.0"},
	Product: "Visual C++ 8.0",
	Editions: []Edition{
		{Name: "Visual C++ 8.0", Variant: "standard", Key: regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\VisualStudio\8.0`)},
		{Name: "Visual C++ 2005 Express", Variant: "express", Key: regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\VCExpress\8.0`)},
	},
	Root: RoleProduct,
	Fragments: []FragmentSpec{
		{Role: RoleProduct, Source: Source{Key: `Setup\VC`, Value: "ProductDir"}},
		{Role: RoleStudio, Source: Source{Key: `Setup\VS`, Value: "ProductDir"}},
		{
			Role:     RoleCommon,
			Source:   Source{Key: `Setup\VS`, Value: "VS7CommonDir"},
			Fallback: &Source{Derive: `{studio}\Common7`},
		},
		{
			Role:     RoleIDE,
			Source:   Source{Key: `Setup\VS`, Value: "EnvironmentDirectory"},
			Fallback: &Source{Derive: `{common}\IDE`},
		},
		{Role: RoleCLRVersion, Source: Source{Value: "CLR Version"}},
		{Role: RoleCLRRoot, Source: Source{Base: dotNetKey, Value: "InstallRoot"}},
		{Role: RoleCLRSDK, Source: Source{Base: dotNetKey, Value: "sdkInstallRootv2.0"}},
		{Role: RoleSDK, Source: Source{Base: windowsSDKKey, Value: "CurrentInstallFolder"}, When: WithSDK},
	},
	Variables: []VarSpec{
		literal("VSINSTALLDIR", `{studio}`),
		literal("VCINSTALLDIR", `{product}`),
		literal("FrameworkDir", `{clr_root}`),
		literal("FrameworkVersion", `{clr_version}`),
		literal("FrameworkSDKDir", `{clr_sdk}`),
		literal("DevEnvDir", `{ide}`),
		{Name: "MSSdk", Parts: parts(`{sdk}`), When: WithSDK},
		{Name: "SdkTools", Parts: parts(`{sdk}\Bin`), When: WithSDK},
		{Name: "OSLibraries", Parts: parts(`{sdk}\Lib`), When: WithSDK},
		{Name: "OSIncludes", Parts: parts(`{sdk}\Include`, `{sdk}\Include\gl`), When: WithSDK},
		{Name: "VCTools", Parts: parts(`{sdk}\VC\Bin`), When: WithSDK},
		{Name: "VCLibraries", Parts: parts(`{sdk}\VC\Lib`), When: WithSDK},
		{Name: "VCIncludes", Parts: parts(`{sdk}\VC\Include`, `{sdk}\VC\Include\Sys`), When: WithSDK},
		{Name: "ReferenceAssemblies", Parts: parts(`%ProgramFiles%\Reference Assemblies\Microsoft\WinFX\v3.0`), When: WithSDK},
		{Name: "PATH", Append: true, Parts: []Part{
			{Template: `{ide}`},
			{Template: `{sdk}\bin`, When: WithSDK},
			{Template: `{product}\bin`},
			{Template: `{product}\platformSDK\bin`, When: WithoutSDK},
			{Template: `{product}\vcpackages`},
			{Template: `{common}\tools`},
			{Template: `{common}\tools\bin`},
			{Template: `{clr_sdk}\bin`},
			{Template: `{clr_root}\{clr_version}`},
		}},
		{Name: "INCLUDE", Append: true, Parts: []Part{
			{Template: `{sdk}\Include`, When: WithSDK},
			{Template: `{sdk}\Include\gl`, When: WithSDK},
			{Template: `{product}\atlmfc\include`},
			{Template: `{product}\include`},
			{Template: `{product}\platformSDK\include`, When: WithoutSDK},
			{Template: `{clr_sdk}\include`},
		}},
		{Name: "LIB", Append: true, Parts: []Part{
			{Template: `{sdk}\lib`, When: WithSDK},
			{Template: `{product}\atlmfc\lib`},
			{Template: `{product}\lib`},
			{Template: `{product}\platformSDK\lib`, When: WithoutSDK},
			{Template: `{clr_sdk}\lib`},
		}},
		literal("LIBPATH", `{clr_root}\{clr_version}`),
		literal("VC_VERS", "80"),
	},
	Update: UpdateSpec{
		Source:  Source{Base: servicing80, Value: "SP"},
		Minimum: 1,
	},
	Marker:      RoleProduct,
	SupportsSDK: true,
}

var builtin = []*Profile{vc60, vc71, vc80}

// All returns the built-in profiles, oldest first.
func All() []*Profile {
	out := make([]*Profile, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup returns the profile whose version or alias equals token.
func Lookup(token string) (*Profile, error) {
	for _, p := range builtin {
		for _, t := range p.Tokens() {
			if t == token {
				return p, nil
			}
		}
	}
	return nil, &UnknownVersionError{Token: token}
}

func supportedTokens() string {
	var tokens []string
	for _, p := range builtin {
		tokens = append(tokens, p.Tokens()...)
	}
	return strings.Join(tokens, ", ")
}
