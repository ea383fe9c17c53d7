package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/ssfconv/constants"
	"github.com/jsphweid/ssfconv/convert"
	"github.com/jsphweid/ssfconv/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// charts are small text files
const maxChartBytes = 8 << 20

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", constants.GetPort(), "port to listen on")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves chart conversion over HTTP",
	Long:  `Serves POST /convert, which takes chart text and returns sequence XML.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxChartBytes)
	res, err := convert.Reader(body, r.URL.Query().Get("encoding"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write(res.XML)
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods(http.MethodPost)
	return cors.Default().Handler(router)
}

func serve() {
	fmt.Println("Running server on port:", servePort, "...")
	log.Fatal(http.ListenAndServe(":"+servePort, NewRouter()))
}
