package core

// sampleCSV pre-fills the input pane.
const sampleCSV = `name,age,email,city,occupation
John Doe,28,john@example.com,New York,Engineer
Jane Smith,34,jane@example.com,Los Angeles,Designer
Bob Johnson,45,bob@example.com,Chicago,Manager
Alice Brown,29,alice@example.com,Houston,Developer
Charlie Wilson,38,charlie@example.com,Phoenix,Analyst`

// Sample returns the example CSV shown when the page first loads.
func Sample() string {
	return sampleCSV
}
