// Package page holds the deployment success page.
package page

import "net/http"

// ContentType is sent with every page response.
const ContentType = "text/html; charset=utf-8"

// HTML is the fixed success document.
const HTML = `
    <html>
    <head><title>Success!</title></head>
    <body style="background-color: #f0f8ff; font-family: sans-serif; text-align: center; padding-top: 50px;">
        <h1 style="color: #2e8b57;">Success! Your AWS DevOps Pipeline is Live!</h1>
        <p>Managed by Jenkins & Kubernetes (K3s).</p>
        <p>Environment: <b>Production</b></p>
    </body>
    </html>
    `

// Handler writes the success page.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusOK)
	// a failed write means the client went away; nothing to report
	_, _ = w.Write([]byte(HTML))
}
