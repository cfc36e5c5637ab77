package investlog

// SampleRecords returns the demonstration data set: seven Rupiah transactions
// between October 2023 and January 2024.
func SampleRecords() []Record {
	d := MustParseDate
	return []Record{
		NewRecord(1, "BBRI.JK", Stock, Buy, d("2024-01-15"), IDR(5_000_000), IDR(5_250_000)).
			WithSector("financial").WithNotes("Bank dengan fundamental kuat"),
		NewRecord(2, "TLKM.JK", Stock, Sell, d("2024-01-14"), IDR(3_000_000), IDR(3_500_000)).
			WithSector("telecommunication").WithNotes("Divestasi sebagian untuk rebalancing"),
		NewRecord(3, "Reksadana Saham ABC", MutualFund, Buy, d("2024-01-13"), IDR(2_500_000), IDR(2_375_000)).
			WithSector("mixed").WithNotes("Investasi diversifikasi"),
		NewRecord(4, "Emas Antam 1gr", Gold, Buy, d("2024-01-10"), IDR(1_000_000), IDR(1_080_000)).
			WithSector("commodity").WithNotes("Hedge against inflation"),
		NewRecord(5, "BMRI.JK", Stock, Buy, d("2023-12-20"), IDR(4_000_000), IDR(4_200_000)).
			WithSector("financial").WithNotes("Bank BUMN dengan prospek bagus"),
		NewRecord(6, "GOTO.JK", Stock, Buy, d("2023-11-15"), IDR(2_000_000), IDR(1_800_000)).
			WithSector("technology").WithNotes("Teknologi dengan potensi growth"),
		NewRecord(7, "Obligasi Pemerintah 10Y", Bond, Buy, d("2023-10-01"), IDR(10_000_000), IDR(10_500_000)).
			WithSector("government").WithNotes("Safe haven investment"),
	}
}
