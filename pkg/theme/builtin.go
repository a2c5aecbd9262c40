package theme

// registerBuiltins installs the built-in themes. Called once from init.
func registerBuiltins() {
	registry["default"] = Theme{
		Name:        "default",
		Background:  "#1a1b26",
		Foreground:  "#c0caf5",
		Dim:         "#9CA3AF",
		Accent:      "#7C3AED",
		Border:      "#6B7280",
		BorderFocus: "#7C3AED",
		Title:       "#A78BFA",
		StatusOK:    "#4CAF50",
		StatusWarn:  "#FF9800",
		StatusError: "#EF4444",
		StatusStale: "#FBBF24",
		PetBody:     "#F472B6",
		PetXP:       "#34D399",
		PetMood:     "#FCD34D",
		PetMenu:     "#A78BFA",
		PetLevel:    "#60A5FA",
	}

	registry["light"] = Theme{
		Name:        "light",
		Background:  "#fafafa",
		Foreground:  "#1f2328",
		Dim:         "#6B7280",
		Accent:      "#6D28D9",
		Border:      "#9CA3AF",
		BorderFocus: "#6D28D9",
		Title:       "#7C3AED",
		StatusOK:    "#15803D",
		StatusWarn:  "#B45309",
		StatusError: "#B91C1C",
		StatusStale: "#B45309",
		PetBody:     "#DB2777",
		PetXP:       "#059669",
		PetMood:     "#B45309",
		PetMenu:     "#6D28D9",
		PetLevel:    "#2563EB",
	}

	registry["mono"] = Theme{
		Name:        "mono",
		Background:  "#000000",
		Foreground:  "#d0d0d0",
		Dim:         "#707070",
		Accent:      "#ffffff",
		Border:      "#707070",
		BorderFocus: "#ffffff",
		Title:       "#ffffff",
		StatusOK:    "#d0d0d0",
		StatusWarn:  "#d0d0d0",
		StatusError: "#ffffff",
		StatusStale: "#a0a0a0",
		PetBody:     "#d0d0d0",
		PetXP:       "#ffffff",
		PetMood:     "#a0a0a0",
		PetMenu:     "#ffffff",
		PetLevel:    "#ffffff",
	}
}
