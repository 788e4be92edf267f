// Admin script: dumps the win leaderboard to an xlsx workbook.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rfoley/quizbot/internal/repositories"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	outPath := "quiz_wins.xlsx"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	wins, err := repositories.NewWinRepository(db).AllWins()
	if err != nil {
		log.Fatal("failed to list wins:", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Nick")
	f.SetCellValue(sheet, "B1", "Wins")

	for i, win := range wins {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, win.Nick)
		f.SetCellValue(sheet, "B"+row, win.Count)
	}

	if err := f.SaveAs(outPath); err != nil {
		log.Fatal("failed to write workbook:", err)
	}

	fmt.Printf("Exported %d winner(s) to %s\n", len(wins), outPath)
}
