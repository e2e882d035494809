// SPDX-License-Identifier: GPL-3.0-only

// dbtool resets the database schema and inserts the sample data. Run with
// --yes to skip the confirmation prompt.
package main

import (
	"bufio"
	"fmt"
	"loket-server/commons"
	"loket-server/db"
	"loket-server/models"
	"os"
	"slices"
	"strings"
)

func main() {
	commons.LoadEnvFile()
	commons.InitLogger()

	if !slices.Contains(os.Args[1:], "--yes") {
		fmt.Print("This will DROP all tables and recreate them with sample data. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return
		}
	}

	db.InitDB()

	commons.Logger.Info("Dropping existing tables")
	if err := db.Conn.Migrator().DropTable(models.AllModels...); err != nil {
		commons.Logger.Error("Failed to drop tables:", err)
		os.Exit(1)
	}

	db.MigrateDB()

	if err := db.SeedDB(); err != nil {
		commons.Logger.Error("Failed to seed database:", err)
		os.Exit(1)
	}

	commons.Logger.Info("Database reset complete")
}
