package util

func GetAppName() string {
	return "ConfPortal"
}

func GetAppLogoURL(frontURL string) string {
	return frontURL + "/logo.png"
}

func GetPaperURL(frontURL, paperId string) string {
	return frontURL + "/papers/" + paperId
}
