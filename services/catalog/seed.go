package catalog

import "fixpoint/models"

// Seed data for the standard repair shop catalog. Immutable reference data;
// the store never mutates these entries after construction.

var seedDevices = []models.Device{
	{
		ID: "iphone-13", Brand: "Apple", Category: models.CategorySmartphone,
		Model: "iPhone 13", Year: 2021, Difficulty: models.DifficultyMedium,
		AvgRepairTimeMin: 45, PartAvailability: models.PartsHigh, Active: true,
	},
	{
		ID: "iphone-15-pro", Brand: "Apple", Category: models.CategorySmartphone,
		Model: "iPhone 15 Pro", Year: 2023, Difficulty: models.DifficultyHard,
		AvgRepairTimeMin: 60, PartAvailability: models.PartsMedium, Active: true,
	},
	{
		ID: "galaxy-s23", Brand: "Samsung", Category: models.CategorySmartphone,
		Model: "Galaxy S23", Year: 2023, Difficulty: models.DifficultyMedium,
		AvgRepairTimeMin: 50, PartAvailability: models.PartsHigh, Active: true,
	},
	{
		ID: "pixel-8", Brand: "Google", Category: models.CategorySmartphone,
		Model: "Pixel 8", Year: 2023, Difficulty: models.DifficultyMedium,
		AvgRepairTimeMin: 50, PartAvailability: models.PartsMedium, Active: true,
	},
	{
		ID: "ipad-air-5", Brand: "Apple", Category: models.CategoryTablet,
		Model: "iPad Air 5", Year: 2022, Difficulty: models.DifficultyHard,
		AvgRepairTimeMin: 75, PartAvailability: models.PartsMedium, Active: true,
	},
	{
		ID: "macbook-pro-14-m2", Brand: "Apple", Category: models.CategoryLaptop,
		Model: "MacBook Pro 14 M2", Year: 2023, Difficulty: models.DifficultyExpert,
		AvgRepairTimeMin: 120, PartAvailability: models.PartsMedium, Active: true,
	},
	{
		ID: "thinkpad-x1-g11", Brand: "Lenovo", Category: models.CategoryLaptop,
		Model: "ThinkPad X1 Carbon Gen 11", Year: 2023, Difficulty: models.DifficultyMedium,
		AvgRepairTimeMin: 90, PartAvailability: models.PartsHigh, Active: true,
	},
	{
		ID: "ps5", Brand: "Sony", Category: models.CategoryGaming,
		Model: "PlayStation 5", Year: 2020, Difficulty: models.DifficultyHard,
		AvgRepairTimeMin: 100, PartAvailability: models.PartsLow, Active: true,
	},
	{
		ID: "switch-oled", Brand: "Nintendo", Category: models.CategoryGaming,
		Model: "Switch OLED", Year: 2021, Difficulty: models.DifficultyMedium,
		AvgRepairTimeMin: 60, PartAvailability: models.PartsMedium, Active: true,
	},
	{
		ID: "watch-series-9", Brand: "Apple", Category: models.CategoryWearable,
		Model: "Watch Series 9", Year: 2023, Difficulty: models.DifficultyExpert,
		AvgRepairTimeMin: 70, PartAvailability: models.PartsLow, Active: true,
	},
	{
		ID: "airpods-pro-2", Brand: "Apple", Category: models.CategoryAudio,
		Model: "AirPods Pro 2", Year: 2022, Difficulty: models.DifficultyExpert,
		AvgRepairTimeMin: 40, PartAvailability: models.PartsLow, Active: false,
	},
}

var seedServices = []models.RepairService{
	{
		ID: "screen-replacement", Name: "Screen Replacement", Category: models.ServiceScreen,
		BasePrice: 89.99, EstimatedTimeMin: 45, Difficulty: models.DifficultyMedium,
		DeviceCategories: []models.DeviceCategory{
			models.CategorySmartphone, models.CategoryTablet, models.CategoryLaptop,
			models.CategoryWearable,
		},
		WarrantyDays: 180, Active: true,
	},
	{
		ID: "battery-replacement", Name: "Battery Replacement", Category: models.ServiceBattery,
		BasePrice: 59.99, EstimatedTimeMin: 30, Difficulty: models.DifficultyEasy,
		DeviceCategories: []models.DeviceCategory{
			models.CategorySmartphone, models.CategoryTablet, models.CategoryLaptop,
			models.CategoryWearable, models.CategoryAudio,
		},
		WarrantyDays: 365, Active: true,
	},
	{
		ID: "charging-port-repair", Name: "Charging Port Repair", Category: models.ServiceCharging,
		BasePrice: 49.99, EstimatedTimeMin: 40, Difficulty: models.DifficultyMedium,
		DeviceCategories: []models.DeviceCategory{
			models.CategorySmartphone, models.CategoryTablet, models.CategoryGaming,
		},
		WarrantyDays: 180, Active: true,
	},
	{
		ID: "water-damage-treatment", Name: "Water Damage Treatment", Category: models.ServiceWaterDamage,
		BasePrice: 79.99, EstimatedTimeMin: 120, Difficulty: models.DifficultyHard,
		DeviceCategories: []models.DeviceCategory{
			models.CategorySmartphone, models.CategoryTablet, models.CategoryWearable,
		},
		WarrantyDays: 90, Active: true,
	},
	{
		ID: "software-troubleshooting", Name: "Software Troubleshooting", Category: models.ServiceSoftware,
		BasePrice: 39.99, EstimatedTimeMin: 60, Difficulty: models.DifficultyEasy,
		DeviceCategories: []models.DeviceCategory{
			models.CategorySmartphone, models.CategoryTablet, models.CategoryLaptop,
			models.CategoryDesktop, models.CategoryGaming,
		},
		WarrantyDays: 30, Active: true,
	},
	{
		ID: "motherboard-repair", Name: "Motherboard Repair", Category: models.ServiceHardware,
		BasePrice: 149.99, EstimatedTimeMin: 180, Difficulty: models.DifficultyExpert,
		DeviceCategories: []models.DeviceCategory{
			models.CategoryLaptop, models.CategoryDesktop, models.CategoryGaming,
		},
		WarrantyDays: 180, Active: true,
	},
	{
		ID: "data-recovery", Name: "Data Recovery", Category: models.ServiceDataRecovery,
		BasePrice: 129.99, EstimatedTimeMin: 240, Difficulty: models.DifficultyExpert,
		DeviceCategories: []models.DeviceCategory{
			models.CategorySmartphone, models.CategoryTablet, models.CategoryLaptop,
			models.CategoryDesktop,
		},
		WarrantyDays: 0, Active: true,
	},
	{
		ID: "hdmi-port-repair", Name: "HDMI Port Repair", Category: models.ServiceHardware,
		BasePrice: 69.99, EstimatedTimeMin: 90, Difficulty: models.DifficultyHard,
		DeviceCategories: []models.DeviceCategory{models.CategoryGaming},
		WarrantyDays:     180, Active: true,
	},
}
