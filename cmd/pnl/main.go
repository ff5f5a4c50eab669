// Command pnl prints profit and loss figures for a single stock position and
// for an overall portfolio, as amounts and percentages.
package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockPnL returns the absolute and percentage profit or loss of a position.
// A negative result is a loss.
func StockPnL(purchasePrice, currentPrice decimal.Decimal, quantity int64) (amount, percent decimal.Decimal) {
	diff := currentPrice.Sub(purchasePrice)
	amount = diff.Mul(decimal.NewFromInt(quantity))
	percent = diff.Div(purchasePrice).Mul(decimal.NewFromInt(100))

	return amount, percent
}

// PortfolioPnL returns the absolute and percentage profit or loss of a
// portfolio against its total investment.
func PortfolioPnL(totalInvestment, currentValue decimal.Decimal) (amount, percent decimal.Decimal) {
	amount = currentValue.Sub(totalInvestment)
	percent = amount.Div(totalInvestment).Mul(decimal.NewFromInt(100))

	return amount, percent
}

func main() {
	stockName := "TCS"
	purchasePrice := decimal.NewFromInt(3050)
	currentPrice := decimal.NewFromInt(3080)
	quantity := int64(16)

	stockAmount, stockPercent := StockPnL(purchasePrice, currentPrice, quantity)

	totalInvestment := decimal.NewFromInt(50000)
	currentValue := decimal.NewFromInt(48800)

	portfolioAmount, portfolioPercent := PortfolioPnL(totalInvestment, currentValue)

	fmt.Printf("\nStock: %s\n", stockName)
	fmt.Printf("Profit/Loss Amount: Rs. %s\n", stockAmount)
	fmt.Printf("Profit/Loss Percentage: %s%%\n", stockPercent.StringFixed(2))

	fmt.Println("\nPortfolio:")
	fmt.Printf("Total Investment: Rs. %s\n", totalInvestment)
	fmt.Printf("Current Value: Rs. %s\n", currentValue)
	fmt.Printf("Profit/Loss Amount: Rs. %s\n", portfolioAmount)
	fmt.Printf("Profit/Loss Percentage: %s%%\n", portfolioPercent.StringFixed(2))
}
