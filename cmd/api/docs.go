package main

// @title           Solicite-AI API
// @version         1.0
// @description     API do assistente conversacional para WhatsApp

// @contact.name   API Support
// @contact.email  suporte@soliciteia.ao

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
