package company

// Option catalogues offered by the input surfaces.
//
//nolint:gochecknoglobals // Read-only catalogues.
var (
	Industries = []string{
		"Manufacturing",
		"Metalworking",
		"Chemicals",
		"Food",
		"Construction",
		"Logistics",
		"Retail",
		"Restaurants",
		"Information & Communications",
		"Finance",
		"Other",
	}

	HeadcountBands = []string{
		"1-50",
		"51-100",
		"101-150",
		"151-200",
		"201-300",
		"301-400",
		"401-500",
	}

	BaselineYears = []int{2020, 2021, 2022, 2023, 2024, 2025}

	EmissionSources = []string{
		"Gas",
		"Gasoline",
		"Diesel",
		"Kerosene",
		"Electricity",
	}

	Equipment = []string{
		"Water heating",
		"Gasoline vehicles",
		"Diesel vehicles",
		"Forklifts",
		"Gas boilers",
		"Kerosene boilers",
		"Diesel generators",
		"Compressors",
		"Press machines",
		"Lighting",
		"Air conditioning",
		"Production equipment",
		"Refrigeration",
	}

	// SavingLawStatuses answers whether the company is a designated
	// business under the energy-saving law.
	SavingLawStatuses = []string{"No", "Yes", "Unknown"}

	EmissionProfiles = []string{
		"Fuel-dependent (mostly Scope 1)",
		"Electricity-dependent (mostly Scope 2)",
		"Mixed (both similar)",
		"Volatile business activity",
	}
)
